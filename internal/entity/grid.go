package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

const GridSize = 3

// WinCombos - every winning line as row-major cell indexes. The order is part
// of the contract: rows top to bottom, columns left to right, then the two
// diagonals. Winner and near-win scans report the first matching line.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move - a single placement at (row, col).
type Move struct {
	Row int
	Col int
}

// Index - converts (row, col) to the row-major cell index.
func Index(row, col int) int {
	return row*GridSize + col
}

// RowCol - converts a row-major cell index back to (row, col).
func RowCol(index int) (row, col int) {
	return index / GridSize, index % GridSize
}

// Grid - a 3x3 board stored row-major. The zero value is an empty board.
// Cells are written once per game and never cleared.
type Grid struct {
	cells [GridSize * GridSize]Mark
}

func (that *Grid) Cell(row, col int) (Mark, error) {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that.cells[Index(row, col)], nil
}

// CellAt - returns the mark at a row-major index. Callers keep the index in range.
func (that *Grid) CellAt(index int) Mark {
	return that.cells[index]
}

// SetCell - writes a mark without validation. Callers check bounds and
// occupancy first.
func (that *Grid) SetCell(row, col int, mark Mark) {
	that.cells[Index(row, col)] = mark
}

func (that *Grid) Rows() [GridSize][GridSize]Mark {
	var rows [GridSize][GridSize]Mark
	for row := range rows {
		copy(rows[row][:], that.cells[row*GridSize:(row+1)*GridSize])
	}

	return rows
}

func (that *Grid) Columns() [GridSize][GridSize]Mark {
	var cols [GridSize][GridSize]Mark
	for col := range cols {
		for row := 0; row < GridSize; row++ {
			cols[col][row] = that.cells[Index(row, col)]
		}
	}

	return cols
}

// MainDiagonal - the "\" diagonal, top-left to bottom-right.
func (that *Grid) MainDiagonal() [GridSize]Mark {
	var diag [GridSize]Mark
	for i := range diag {
		diag[i] = that.cells[Index(i, i)]
	}

	return diag
}

// AntiDiagonal - the "/" diagonal, top-right to bottom-left.
func (that *Grid) AntiDiagonal() [GridSize]Mark {
	var diag [GridSize]Mark
	for i := range diag {
		diag[i] = that.cells[Index(i, GridSize-1-i)]
	}

	return diag
}

// CellCount - the number of occupied cells, which is also the ply index.
func (that *Grid) CellCount() int {
	count := 0
	for _, cell := range that.cells {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that *Grid) IsFull() bool {
	return that.CellCount() == len(that.cells)
}

// Winner - scans the winning lines in WinCombos order and returns the mark of
// the first fully occupied one, or EmptyCell if no line is complete.
func (that *Grid) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that.cells[combo[0]], that.cells[combo[1]], that.cells[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}
