package bot

import "github.com/rocketscienceinc/tictactoe-duel/internal/entity"

var (
	centerIndex = entity.Index(1, 1)

	corners = []entity.Move{
		{Row: 0, Col: 0},
		{Row: 0, Col: 2},
		{Row: 2, Col: 0},
		{Row: 2, Col: 2},
	}

	edges = []entity.Move{
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 1, Col: 2},
		{Row: 2, Col: 1},
	}

	// openingBook - candidate corners for our second move, each keyed by the
	// edge pair it sits diagonally opposite of. The first pair with both
	// edges empty picks its corner. A single opposing reply cannot block all
	// three pairs.
	openingBook = []struct {
		pair   [2]int
		corner int
	}{
		{pair: [2]int{entity.Index(0, 1), entity.Index(1, 0)}, corner: entity.Index(2, 2)},
		{pair: [2]int{entity.Index(0, 1), entity.Index(1, 2)}, corner: entity.Index(2, 0)},
		{pair: [2]int{entity.Index(1, 0), entity.Index(2, 1)}, corner: entity.Index(0, 2)},
	}
)

type perfectStrategy struct{}

// NewPerfect - the deterministic closed-form strategy. It is keyed by the
// number of occupied cells instead of searching the game tree, and assumes
// it has been driving its own side since an empty grid.
func NewPerfect() Strategy {
	return &perfectStrategy{}
}

func (that *perfectStrategy) NextMove(grid *entity.Grid, mark entity.Mark) (entity.Move, error) {
	switch grid.CellCount() {
	case 0:
		return entity.Move{Row: 0, Col: 0}, nil
	case 1:
		return that.replyToOpening(grid), nil
	case 2:
		return that.developOpening(grid, mark), nil
	case 3:
		return that.defendOpening(grid, mark), nil
	case 4:
		return that.pressAdvantage(grid, mark)
	default:
		return that.endgameMove(grid, mark)
	}
}

// replyToOpening - moving second: take the center, or a corner when the
// opponent opened with the center.
func (that *perfectStrategy) replyToOpening(grid *entity.Grid) entity.Move {
	if grid.CellAt(centerIndex) == entity.EmptyCell {
		return entity.Move{Row: 1, Col: 1}
	}

	move, _ := firstFree(grid, corners)

	return move
}

// developOpening - our second move as the opener. With the center still free,
// take the corner diagonally opposite the first unblocked edge pair; with the
// center taken, mirror the opening corner through it.
func (that *perfectStrategy) developOpening(grid *entity.Grid, mark entity.Mark) entity.Move {
	if grid.CellAt(centerIndex) != entity.EmptyCell {
		for index := 0; index < entity.GridSize*entity.GridSize; index++ {
			if grid.CellAt(index) != mark || !isCorner(index) {
				continue
			}

			row, col := entity.RowCol(entity.GridSize*entity.GridSize - 1 - index)

			return entity.Move{Row: row, Col: col}
		}

		move, _ := firstFree(grid, corners)

		return move
	}

	for _, book := range openingBook {
		if grid.CellAt(book.corner) != entity.EmptyCell {
			continue
		}

		if grid.CellAt(book.pair[0]) == entity.EmptyCell && grid.CellAt(book.pair[1]) == entity.EmptyCell {
			row, col := entity.RowCol(book.corner)
			return entity.Move{Row: row, Col: col}
		}
	}

	move, _ := firstFree(grid, corners)

	return move
}

// defendOpening - our second move as the responder: block an imminent win,
// break a both-ends-of-a-center-line fork with a corner, otherwise take an
// edge. An edge is also the right reply to opposite opposing corners.
func (that *perfectStrategy) defendOpening(grid *entity.Grid, mark entity.Mark) entity.Move {
	if move, ok := nearWin(grid, mark.Opposite()); ok {
		return move
	}

	if grid.CellAt(centerIndex) == mark && that.centerLineFork(grid, mark.Opposite()) {
		if move, ok := firstFree(grid, corners); ok {
			return move
		}
	}

	if move, ok := firstFree(grid, edges); ok {
		return move
	}

	move, _ := firstFree(grid, corners)

	return move
}

// centerLineFork - the opponent holds both ends of the middle row or the
// middle column while we hold the center.
func (that *perfectStrategy) centerLineFork(grid *entity.Grid, opponent entity.Mark) bool {
	rowEnds := grid.CellAt(entity.Index(1, 0)) == opponent && grid.CellAt(entity.Index(1, 2)) == opponent
	colEnds := grid.CellAt(entity.Index(0, 1)) == opponent && grid.CellAt(entity.Index(2, 1)) == opponent

	return rowEnds || colEnds
}

// pressAdvantage - our third move as the opener: win outright when a line is
// open; with the center free, take the corner that turns the two owned
// corners into a double threat; with the center taken, block.
func (that *perfectStrategy) pressAdvantage(grid *entity.Grid, mark entity.Mark) (entity.Move, error) {
	if move, ok := nearWin(grid, mark); ok {
		return move, nil
	}

	if grid.CellAt(centerIndex) == entity.EmptyCell {
		if move, ok := that.junctionCorner(grid, mark); ok {
			return move, nil
		}
	} else if move, ok := nearWin(grid, mark.Opposite()); ok {
		return move, nil
	}

	return randomMove(grid)
}

// junctionCorner - the first free corner with open lines to two owned cells,
// each still completable. Taking it creates two winning threats at once.
func (that *perfectStrategy) junctionCorner(grid *entity.Grid, mark entity.Mark) (entity.Move, bool) {
	for _, corner := range corners {
		cornerIndex := entity.Index(corner.Row, corner.Col)
		if grid.CellAt(cornerIndex) != entity.EmptyCell {
			continue
		}

		open := 0

		for _, combo := range entity.WinCombos {
			if !comboContains(combo, cornerIndex) {
				continue
			}

			owned, empty := 0, 0
			for _, index := range combo {
				if index == cornerIndex {
					continue
				}

				switch grid.CellAt(index) {
				case mark:
					owned++
				case entity.EmptyCell:
					empty++
				}
			}

			if owned == 1 && empty == 1 {
				open++
			}
		}

		if open >= 2 {
			return corner, true
		}
	}

	return entity.Move{}, false
}

// endgameMove - from the fifth cell on: win, block, otherwise play randomly.
// Optimal earlier play never reaches the random fallback; it stays as the
// safety net for lines the book does not anticipate.
func (that *perfectStrategy) endgameMove(grid *entity.Grid, mark entity.Mark) (entity.Move, error) {
	if move, ok := nearWin(grid, mark); ok {
		return move, nil
	}

	if move, ok := nearWin(grid, mark.Opposite()); ok {
		return move, nil
	}

	return randomMove(grid)
}

func isCorner(index int) bool {
	row, col := entity.RowCol(index)
	return row != 1 && col != 1
}

func comboContains(combo [3]int, index int) bool {
	return combo[0] == index || combo[1] == index || combo[2] == index
}
