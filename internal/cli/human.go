package cli

import (
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// HumanSource - obtains a seat's moves from the person at the terminal. Pairs
// that land on an occupied cell are re-asked here, before the move ever
// reaches the game.
type HumanSource struct {
	prompter *Prompter
}

func NewHumanSource(prompter *Prompter) *HumanSource {
	return &HumanSource{prompter: prompter}
}

// NextMove - prompts for a row and a column until the pair names a free cell.
func (that *HumanSource) NextMove(grid *entity.Grid, _ entity.Mark) (entity.Move, error) {
	for {
		row, err := that.prompter.ReadCellNumber("Select a row")
		if err != nil {
			return entity.Move{}, err
		}

		col, err := that.prompter.ReadCellNumber("Select a column")
		if err != nil {
			return entity.Move{}, err
		}

		if grid.CellAt(entity.Index(row, col)) != entity.EmptyCell {
			that.prompter.Println("Invalid cell, already in use")
			continue
		}

		return entity.Move{Row: row, Col: col}, nil
	}
}
