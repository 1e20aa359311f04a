// Package cache keeps the leaderboard out of the hot query path. The
// cache is best-effort: any redis failure is logged and treated as a
// miss, and a nil client disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Scetch/potw/internal/logger"
	"github.com/Scetch/potw/internal/redis"
	"github.com/Scetch/potw/internal/store"
)

const leaderboardKey = "potw:leaderboard"

type Leaderboard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboard(client *redis.Client, ttl time.Duration) *Leaderboard {
	return &Leaderboard{client: client, ttl: ttl}
}

func (l *Leaderboard) Get(ctx context.Context) ([]store.LeaderboardEntry, bool) {
	if l == nil || l.client == nil {
		return nil, false
	}

	raw, err := l.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logger.Warn("leaderboard cache read failed", map[string]any{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var entries []store.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (l *Leaderboard) Set(ctx context.Context, entries []store.LeaderboardEntry) {
	if l == nil || l.client == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}

	if err := l.client.Set(ctx, leaderboardKey, raw, l.ttl).Err(); err != nil {
		logger.Warn("leaderboard cache write failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached leaderboard after a solution submission.
func (l *Leaderboard) Invalidate(ctx context.Context) {
	if l == nil || l.client == nil {
		return
	}

	if err := l.client.Del(ctx, leaderboardKey).Err(); err != nil {
		logger.Warn("leaderboard cache invalidate failed", map[string]any{
			"error": err.Error(),
		})
	}
}
