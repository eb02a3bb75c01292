package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var ErrAborted = errors.New("game aborted")

// MoveSource - one seat's way of producing the next move for the current
// grid: a human at the prompt or a decision engine.
type MoveSource interface {
	NextMove(grid *entity.Grid, mark entity.Mark) (entity.Move, error)
}

// View - the synchronous presentation surface the runners report to. All
// calls happen from the goroutine driving the game.
type View interface {
	ShowGrid(grid *entity.Grid)
	ShowTurn(mark entity.Mark)
	ShowInvalidMove(move entity.Move, err error)
	ShowOutcome(result string)
}

// Local - runs one game between two move sources in a single process.
type Local struct {
	logger  *slog.Logger
	view    View
	sources map[entity.Mark]MoveSource
}

func NewLocal(logger *slog.Logger, view View, sourceX, sourceO MoveSource) *Local {
	return &Local{
		logger: logger,
		view:   view,
		sources: map[entity.Mark]MoveSource{
			entity.PlayerX: sourceX,
			entity.PlayerO: sourceO,
		},
	}
}

// Play - drives a fresh game to completion and returns it. A rejected
// placement is reported and the same seat is asked again; cancelling the
// context between turns aborts the game.
func (that *Local) Play(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("component", "game")

	game := entity.NewGame()
	that.view.ShowGrid(&game.Grid)

	for !game.IsFinished() {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: interrupted", ErrAborted)
		}

		that.view.ShowTurn(game.Turn)

		mark := game.Turn
		move, err := that.sources[mark].NextMove(&game.Grid, mark)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain a move for %s: %w", mark, err)
		}

		if err = game.TryMove(move.Row, move.Col); err != nil {
			if !apperror.IsPlacement(err) {
				return nil, fmt.Errorf("failed to apply move: %w", err)
			}

			log.Debug("move rejected", "mark", mark, "row", move.Row, "col", move.Col, "error", err)
			that.view.ShowInvalidMove(move, err)

			continue
		}

		that.view.ShowGrid(&game.Grid)
	}

	log.Info("game finished", "result", game.Result(), "moves", game.Grid.CellCount())
	that.view.ShowOutcome(game.Result())

	return game, nil
}
