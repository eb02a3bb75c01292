package bot

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var (
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Strategy - a decision engine: given the current grid and the mark to play,
// it produces a move. Strategies never mutate the grid.
type Strategy interface {
	NextMove(grid *entity.Grid, mark entity.Mark) (entity.Move, error)
}

// ForDifficulty - selects the strategy for a configured difficulty.
func ForDifficulty(difficulty string) (Strategy, error) {
	switch difficulty {
	case entity.EasyDifficulty:
		return NewRandom(), nil
	case entity.NormalDifficulty:
		return NewNormal(), nil
	case entity.HardDifficulty:
		return NewPerfect(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDifficulty, difficulty)
	}
}

type randomStrategy struct{}

// NewRandom - uniform choice among the empty cells.
func NewRandom() Strategy {
	return &randomStrategy{}
}

func (that *randomStrategy) NextMove(grid *entity.Grid, _ entity.Mark) (entity.Move, error) {
	return randomMove(grid)
}

type normalStrategy struct{}

// NewNormal - blocks an imminent opposing win, otherwise plays randomly.
func NewNormal() Strategy {
	return &normalStrategy{}
}

func (that *normalStrategy) NextMove(grid *entity.Grid, mark entity.Mark) (entity.Move, error) {
	if move, ok := nearWin(grid, mark.Opposite()); ok {
		return move, nil
	}

	return randomMove(grid)
}

func randomMove(grid *entity.Grid) (entity.Move, error) {
	available := availableMoves(grid)
	if len(available) == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	return available[rand.Intn(len(available))], nil //nolint: gosec // it's ok
}

func availableMoves(grid *entity.Grid) []entity.Move {
	available := make([]entity.Move, 0, entity.GridSize*entity.GridSize)
	for index := 0; index < entity.GridSize*entity.GridSize; index++ {
		if grid.CellAt(index) == entity.EmptyCell {
			row, col := entity.RowCol(index)
			available = append(available, entity.Move{Row: row, Col: col})
		}
	}

	return available
}

// nearWin - scans the winning lines in combo order and returns the empty cell
// of the first line holding exactly two cells of mark and one empty cell.
// Offensive callers pass their own mark to find a winning move, defensive
// callers pass the opponent's to find the block.
func nearWin(grid *entity.Grid, mark entity.Mark) (entity.Move, bool) {
	for _, combo := range entity.WinCombos {
		count := 0
		emptyIndex := -1

		for _, index := range combo {
			switch grid.CellAt(index) {
			case mark:
				count++
			case entity.EmptyCell:
				emptyIndex = index
			}
		}

		if count == 2 && emptyIndex >= 0 {
			row, col := entity.RowCol(emptyIndex)
			return entity.Move{Row: row, Col: col}, true
		}
	}

	return entity.Move{}, false
}

func firstFree(grid *entity.Grid, moves []entity.Move) (entity.Move, bool) {
	for _, move := range moves {
		if grid.CellAt(entity.Index(move.Row, move.Col)) == entity.EmptyCell {
			return move, true
		}
	}

	return entity.Move{}, false
}
