package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

// Game - the turn state machine for one match: a grid plus whose turn it is.
// It never terminates itself; callers poll Winner and IsFull after each
// applied move. A finished game is discarded, a rematch starts from a fresh
// instance.
type Game struct {
	Grid Grid
	Turn Mark
}

func NewGame() *Game {
	return NewGameStartingWith(PlayerX)
}

// NewGameStartingWith - returns an empty game with the given mark to move.
// Networked games use it because the handshake fixes the starting mark.
func NewGameStartingWith(mark Mark) *Game {
	return &Game{Turn: mark}
}

// TryMove - places the current turn's mark at (row, col) and flips the turn.
// Fails with apperror.ErrOutOfBounds or apperror.ErrCellOccupied, leaving the
// game untouched. This is the only mutation path.
func (that *Game) TryMove(row, col int) error {
	cell, err := that.Grid.Cell(row, col)
	if err != nil {
		return err
	}

	if cell != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.Grid.SetCell(row, col, that.Turn)
	that.Turn = that.Turn.Opposite()

	return nil
}

func (that *Game) Winner() Mark {
	return that.Grid.Winner()
}

func (that *Game) IsFinished() bool {
	return that.Grid.Winner() != EmptyCell || that.Grid.IsFull()
}

// Result - the outcome of a finished game: the winner's mark or PlayerTie.
func (that *Game) Result() string {
	if winner := that.Grid.Winner(); winner != EmptyCell {
		return string(winner)
	}

	return PlayerTie
}
