// Package memory holds in-process adapters used when no external store is
// configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RevocationStore is a process-local ports.RevocationStore. Entries older
// than the session TTL are dropped by Prune.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	ttl     time.Duration
}

func NewRevocationStore(ttl time.Duration) *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), ttl: ttl}
}

func (s *RevocationStore) RevokeUser(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at = at.Truncate(time.Second)
	if prev, ok := s.revoked[userID]; !ok || at.After(prev) {
		s.revoked[userID] = at
	}
	return nil
}

func (s *RevocationStore) RevokedSince(_ context.Context, userID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.revoked[userID]
	return at, ok, nil
}

func (s *RevocationStore) Ping(context.Context) error { return nil }

// Prune drops revocations that no live token can predate and returns how
// many were removed.
func (s *RevocationStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, at := range s.revoked {
		if now.Sub(at) > s.ttl {
			delete(s.revoked, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked revocations.
func (s *RevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

// StartPruner schedules Prune on the given cron spec (e.g. "@every 10m").
// The returned function stops the scheduler.
func (s *RevocationStore) StartPruner(spec string, log zerolog.Logger) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := s.Prune(time.Now()); n > 0 {
			log.Debug().Int("removed", n).Msg("pruned session revocations")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
