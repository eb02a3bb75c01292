package application

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-duel/internal/config"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository/storage"
)

// archive - best-effort persistence of finished matches. A disabled or
// unreachable archive never blocks play; Record becomes a no-op.
type archive struct {
	logger  *slog.Logger
	storage *storage.RedisStorage
	matches repository.MatchRepository
}

func newArchive(ctx context.Context, logger *slog.Logger, conf *config.Config) *archive {
	log := logger.With("component", "archive")

	arch := &archive{logger: log}

	if !conf.Archive.Enabled {
		return arch
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Archive.Redis.GetRedisAddr())
	if err != nil {
		log.Error("failed to connect to match archive, games will not be recorded", "error", err)

		return arch
	}

	arch.storage = redisStorage
	arch.matches = repository.NewMatchRepository(redisStorage.Connection)

	return arch
}

// Record - saves one finished match. Failures are logged, never surfaced.
func (that *archive) Record(ctx context.Context, match *entity.Match) {
	if that.matches == nil {
		return
	}

	if err := that.matches.Save(ctx, match); err != nil {
		that.logger.Error("failed to archive match", "error", err)

		return
	}

	that.logger.Info("match archived", "id", match.ID, "winner", match.Winner)
}

func (that *archive) Close() {
	if that.storage == nil {
		return
	}

	if err := that.storage.Close(); err != nil {
		that.logger.Error("failed to close match archive", "error", err)
	}
}
