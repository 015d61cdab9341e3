// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	cerrors "torqueup-chat/internal/common/errors"
	"torqueup-chat/internal/common/logger"
)

const usernamesByIDQuery = `
	SELECT id, username
	FROM profiles
	WHERE id = ANY($1)`

const usernameCacheKeyPrefix = "seller:username:"

// ProfileStore resolves seller display names by profile id, with a
// short-lived Redis cache in front of Postgres. Cache failures are
// absorbed: the store falls through to the database and keeps going.
type ProfileStore struct {
	db     *sql.DB
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewProfileStore(db *sql.DB, cache *redis.Client, ttl time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

// Usernames returns a username per requested profile id. Ids with no
// profile row are simply absent from the result map, the caller decides
// on a placeholder.
func (s *ProfileStore) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	usernames := make(map[string]string, len(ids))

	missing := s.fromCache(ctx, dedupe(ids), usernames)
	if len(missing) == 0 {
		return usernames, nil
	}

	rows, err := s.db.QueryContext(ctx, usernamesByIDQuery, pq.Array(missing))
	if err != nil {
		return nil, cerrors.NewProfileLookupFailedError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, cerrors.NewProfileLookupFailedError(fmt.Errorf("scan profile row: %w", err))
		}
		usernames[id] = username
		s.toCache(ctx, id, username)
	}

	if err := rows.Err(); err != nil {
		return nil, cerrors.NewProfileLookupFailedError(err)
	}

	return usernames, nil
}

// fromCache fills found entries into out and returns the ids that still
// need a database lookup.
func (s *ProfileStore) fromCache(ctx context.Context, ids []string, out map[string]string) []string {
	if s.cache == nil {
		return ids
	}

	var missing []string
	for _, id := range ids {
		val, err := s.cache.Get(ctx, usernameCacheKeyPrefix+id).Result()
		if err != nil {
			if err != redis.Nil {
				s.logger.Warn("profile cache read failed", map[string]interface{}{
					"id":    id,
					"error": err.Error(),
				})
			}
			missing = append(missing, id)
			continue
		}
		out[id] = val
	}
	return missing
}

func (s *ProfileStore) toCache(ctx context.Context, id, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, usernameCacheKeyPrefix+id, username, s.ttl).Err(); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
