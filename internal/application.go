package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-duel/internal/bot"
	"github.com/rocketscienceinc/tictactoe-duel/internal/cli"
	"github.com/rocketscienceinc/tictactoe-duel/internal/config"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/game"
	"github.com/rocketscienceinc/tictactoe-duel/internal/render"
	"github.com/rocketscienceinc/tictactoe-duel/internal/transport/peer"
)

var (
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrUnknownOpponent = errors.New("unknown opponent kind")
	ErrInvalidHostMark = errors.New("host mark must be X or O")
)

const (
	humanOpponent = "human"
	botOpponent   = "bot"
)

// RunApp - runs one play session in the configured mode.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	view := render.NewConsole(os.Stdout, conf.BoardStyle, conf.BoardColor)
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	arch := newArchive(ctx, logger, conf)
	defer arch.Close()

	switch conf.Mode {
	case entity.LocalMode:
		return runLocal(ctx, logger, conf, view, prompter, arch)
	case entity.HostMode:
		return runHost(ctx, logger, conf, view, prompter, arch)
	case entity.JoinMode:
		return runJoin(ctx, logger, conf, view, prompter, arch)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, conf.Mode)
	}
}

// runLocal - both seats on this terminal: X is the person at the prompt, O is
// whatever the config seats opposite them. Finished games offer a rematch.
func runLocal(ctx context.Context, logger *slog.Logger, conf *config.Config, view *render.Console, prompter *cli.Prompter, arch *archive) error {
	log := logger.With("component", "app")

	sourceX := cli.NewHumanSource(prompter)

	sourceO, err := opponentSource(conf, prompter)
	if err != nil {
		return err
	}

	for {
		started := time.Now()

		finished, err := game.NewLocal(logger, view, sourceX, sourceO).Play(ctx)
		if err != nil {
			if errors.Is(err, game.ErrAborted) {
				log.Info("game aborted")
				return nil
			}

			return fmt.Errorf("failed to play local game: %w", err)
		}

		arch.Record(ctx, matchRecord(conf, entity.LocalMode, finished, started))

		again, err := prompter.ReadBool("Play again?", true)
		if err != nil {
			log.Debug("failed to read rematch answer", "error", err)
			return nil
		}

		if !again {
			return nil
		}
	}
}

// runHost - binds the listen address, waits for one peer and plays a single
// game against it.
func runHost(ctx context.Context, logger *slog.Logger, conf *config.Config, view *render.Console, prompter *cli.Prompter, arch *archive) error {
	log := logger.With("component", "app")

	hostMark := entity.Mark(strings.ToUpper(conf.HostMark))
	if hostMark != entity.PlayerX && hostMark != entity.PlayerO {
		return fmt.Errorf("%w: %q", ErrInvalidHostMark, conf.HostMark)
	}

	listener, err := peer.Listen(logger, conf.ListenAddr, hostMark, conf.HostFirst)
	if err != nil {
		return fmt.Errorf("failed to host a game: %w", err)
	}
	defer listener.Close()

	log.Info("waiting for a peer", "addr", listener.Addr().String())
	prompter.Println(fmt.Sprintf("Hosting on %s, waiting for an opponent...", listener.Addr()))

	session, err := listener.Accept(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("hosting cancelled")
			return nil
		}

		return fmt.Errorf("failed to accept a peer: %w", err)
	}
	defer session.Close()

	log.Info("peer joined", "remote", session.RemoteAddr())

	return playNetworked(ctx, logger, conf, view, prompter, arch, session, entity.HostMode)
}

// runJoin - connects to a hosting peer and plays with whatever seat the host
// assigns.
func runJoin(ctx context.Context, logger *slog.Logger, conf *config.Config, view *render.Console, prompter *cli.Prompter, arch *archive) error {
	log := logger.With("component", "app")

	prompter.Println(fmt.Sprintf("Connecting to %s...", conf.ConnectAddr))

	session, err := peer.Dial(ctx, logger, conf.ConnectAddr)
	if err != nil {
		return fmt.Errorf("failed to join a game: %w", err)
	}
	defer session.Close()

	log.Info("joined a game", "remote", session.RemoteAddr(), "mark", session.LocalMark(), "first", session.LocalFirst())

	return playNetworked(ctx, logger, conf, view, prompter, arch, session, entity.JoinMode)
}

func playNetworked(ctx context.Context, logger *slog.Logger, conf *config.Config, view *render.Console, prompter *cli.Prompter, arch *archive, session *peer.Session, mode string) error {
	log := logger.With("component", "app")

	prompter.Println(fmt.Sprintf("You play %s.", session.LocalMark()))

	started := time.Now()

	finished, err := game.NewNetworked(logger, view, session, cli.NewHumanSource(prompter)).Play(ctx)
	if err != nil {
		if errors.Is(err, game.ErrAborted) {
			log.Info("game aborted")
			prompter.Println("Game aborted.")

			return nil
		}

		return fmt.Errorf("failed to play networked game: %w", err)
	}

	arch.Record(ctx, matchRecord(conf, mode, finished, started))

	return nil
}

// opponentSource - the seat opposite the prompt in local mode.
func opponentSource(conf *config.Config, prompter *cli.Prompter) (game.MoveSource, error) {
	switch conf.Opponent {
	case humanOpponent:
		return cli.NewHumanSource(prompter), nil
	case botOpponent:
		strategy, err := bot.ForDifficulty(conf.BotDifficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to pick bot strategy: %w", err)
		}

		return strategy, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOpponent, conf.Opponent)
	}
}

func matchRecord(conf *config.Config, mode string, finished *entity.Game, started time.Time) *entity.Match {
	match := &entity.Match{
		ID:         uuid.NewString(),
		Mode:       mode,
		Winner:     finished.Result(),
		Moves:      finished.Grid.CellCount(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}

	if mode == entity.LocalMode && conf.Opponent == botOpponent {
		match.Difficulty = conf.BotDifficulty
	}

	return match
}
