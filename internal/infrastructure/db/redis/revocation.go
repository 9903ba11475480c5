package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records per-user session revocations in Redis.
// Key format: revoked:user:<user_id> → unix seconds of the revocation.
//
// Entries expire after the session TTL: by then every token the revocation
// could apply to has expired on its own.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// RevokeUser invalidates every session of userID issued at or before at.
func (s *RevocationStore) RevokeUser(ctx context.Context, userID string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(userID), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke user: %w", err)
	}
	return nil
}

// RevokedSince returns the latest revocation time for userID, if any.
func (s *RevocationStore) RevokedSince(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("revocation lookup: %w", err)
	}

	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("revocation lookup: malformed value %q: %w", raw, err)
	}
	return time.Unix(secs, 0).UTC(), true, nil
}

func (s *RevocationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RevocationStore) key(userID string) string {
	return "revoked:user:" + userID
}
