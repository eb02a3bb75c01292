package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// Peer - the synchronized remote seat of a networked game. The handshake
// already fixed the local mark and who moves first before a Peer exists.
type Peer interface {
	LocalMark() entity.Mark
	LocalFirst() bool
	SendMove(move entity.Move) error
	ReceiveMove() (entity.Move, error)
	Abort() error
}

// Networked - keeps a local grid in lockstep with a remote one by replaying
// the same sequence of validated moves over a peer session. Neither end ever
// transmits board state, only moves.
type Networked struct {
	logger *slog.Logger
	view   View
	peer   Peer
	source MoveSource
}

func NewNetworked(logger *slog.Logger, view View, peer Peer, source MoveSource) *Networked {
	return &Networked{
		logger: logger,
		view:   view,
		peer:   peer,
		source: source,
	}
}

// Play - drives a fresh game to completion, alternating between the local
// seat and the peer. Protocol and transport failures abort the game; a
// cancelled context notifies the peer before giving up.
func (that *Networked) Play(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("component", "game")

	localMark := that.peer.LocalMark()
	remoteMark := localMark.Opposite()

	starting := localMark
	if !that.peer.LocalFirst() {
		starting = remoteMark
	}

	game := entity.NewGameStartingWith(starting)
	localTurn := that.peer.LocalFirst()

	that.view.ShowGrid(&game.Grid)

	for !game.IsFinished() {
		if ctx.Err() != nil {
			if err := that.peer.Abort(); err != nil {
				log.Debug("failed to notify peer about the abort", "error", err)
			}

			return nil, fmt.Errorf("%w: interrupted", ErrAborted)
		}

		var err error
		if localTurn {
			err = that.playLocal(game, localMark)
		} else {
			err = that.playRemote(game, remoteMark)
		}

		if err != nil {
			if errors.Is(err, apperror.ErrUnexpectedGameEnd) {
				log.Info("peer abandoned the game")
				return nil, fmt.Errorf("%w: peer quit", ErrAborted)
			}

			return nil, err
		}

		localTurn = !localTurn
	}

	log.Info("game finished", "result", game.Result(), "moves", game.Grid.CellCount())
	that.view.ShowOutcome(game.Result())

	return game, nil
}

// playLocal - obtains a move for the local seat, applies it and transmits
// it. Rejected placements stay local: the seat is asked again and nothing
// reaches the wire until a move applies cleanly.
func (that *Networked) playLocal(game *entity.Game, mark entity.Mark) error {
	for {
		that.view.ShowTurn(mark)

		move, err := that.source.NextMove(&game.Grid, mark)
		if err != nil {
			return fmt.Errorf("failed to obtain a move for %s: %w", mark, err)
		}

		if err = game.TryMove(move.Row, move.Col); err != nil {
			if !apperror.IsPlacement(err) {
				return fmt.Errorf("failed to apply move: %w", err)
			}

			that.view.ShowInvalidMove(move, err)

			continue
		}

		if err = that.peer.SendMove(move); err != nil {
			return fmt.Errorf("failed to send move: %w", err)
		}

		that.view.ShowGrid(&game.Grid)

		return nil
	}
}

// playRemote - blocks for the peer's move and applies it with the remote
// mark. A placement rejection here means the grids have diverged, which is
// fatal for the session.
func (that *Networked) playRemote(game *entity.Game, mark entity.Mark) error {
	that.view.ShowTurn(mark)

	move, err := that.peer.ReceiveMove()
	if err != nil {
		return fmt.Errorf("failed to receive move: %w", err)
	}

	if err = game.TryMove(move.Row, move.Col); err != nil {
		return fmt.Errorf("failed to apply peer move: %w", err)
	}

	that.view.ShowGrid(&game.Grid)

	return nil
}
