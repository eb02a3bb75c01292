package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

const (
	matchKeyPrefix = "match:"

	// recentMatchesKey - the list of archived match IDs, newest first,
	// trimmed to recentMatchesCap entries.
	recentMatchesKey = "matches:recent"
	recentMatchesCap = 100
)

type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	RecentIDs(ctx context.Context, limit int64) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

// Save - archives one finished match and records its ID on the recent list.
func (that *dbMatch) Save(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	matchKey := matchKeyPrefix + match.ID
	if err = that.client.Set(ctx, matchKey, matchJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	if err = that.client.LPush(ctx, recentMatchesKey, match.ID).Err(); err != nil {
		return fmt.Errorf("failed to push match id: %w", err)
	}

	if err = that.client.LTrim(ctx, recentMatchesKey, 0, recentMatchesCap-1).Err(); err != nil {
		return fmt.Errorf("failed to trim recent matches: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	matchKey := matchKeyPrefix + id

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Match{}, ErrMatchNotFound
	}

	if err != nil {
		return &entity.Match{}, fmt.Errorf("failed to get match: %w", err)
	}

	var match entity.Match
	if err = json.Unmarshal([]byte(response), &match); err != nil {
		return &entity.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

// RecentIDs - the newest archived match IDs, most recent first.
func (that *dbMatch) RecentIDs(ctx context.Context, limit int64) ([]string, error) {
	ids, err := that.client.LRange(ctx, recentMatchesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range recent matches: %w", err)
	}

	return ids, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	matchKey := matchKeyPrefix + id

	if err := that.client.Del(ctx, matchKey).Err(); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	if err := that.client.LRem(ctx, recentMatchesKey, 0, id).Err(); err != nil {
		return fmt.Errorf("failed to remove match id: %w", err)
	}

	return nil
}
