/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"sync"
	"time"
)

// RoundStore keeps rounds between the requests of a single page view.
type RoundStore interface {
	// Create stores a new round, failing with ErrRoundExists on id collision.
	Create(ctx context.Context, round *Round) error
	// Get returns a copy of the round, or ErrUnknownRound.
	Get(ctx context.Context, id string) (*Round, error)
	// Update applies fn to the stored round atomically. If fn returns an
	// error the round is left untouched.
	Update(ctx context.Context, id string, fn func(*Round) error) (*Round, error)
}

type memoryEntry struct {
	round   *Round
	expires time.Time
}

// memoryRoundStore holds rounds in process, reaping those idle longer than
// ttl.
type memoryRoundStore struct {
	mu     sync.Mutex
	rounds map[string]memoryEntry
	ttl    time.Duration
}

func newMemoryRoundStore(ttl time.Duration) *memoryRoundStore {
	return &memoryRoundStore{
		rounds: make(map[string]memoryEntry),
		ttl:    ttl,
	}
}

func (s *memoryRoundStore) Create(_ context.Context, round *Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.rounds[round.ID]; ok && time.Now().Before(e.expires) {
		return ErrRoundExists
	}

	s.rounds[round.ID] = memoryEntry{
		round:   round.clone(),
		expires: time.Now().Add(s.ttl),
	}

	return nil
}

func (s *memoryRoundStore) Get(_ context.Context, id string) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rounds[id]
	if !ok || !time.Now().Before(e.expires) {
		return nil, ErrUnknownRound
	}

	return e.round.clone(), nil
}

func (s *memoryRoundStore) Update(_ context.Context, id string, fn func(*Round) error) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rounds[id]
	if !ok || !time.Now().Before(e.expires) {
		return nil, ErrUnknownRound
	}

	round := e.round.clone()
	if err := fn(round); err != nil {
		return nil, err
	}

	s.rounds[id] = memoryEntry{
		round:   round,
		expires: time.Now().Add(s.ttl),
	}

	return round.clone(), nil
}

// reap drops every round that expired before now and returns how many were
// removed.
func (s *memoryRoundStore) reap(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.rounds {
		if now.Before(e.expires) {
			continue
		}
		delete(s.rounds, id)
		removed++
	}

	return removed
}

// reaperLoop periodically removes expired rounds until ctx is done.
func (s *memoryRoundStore) reaperLoop(ctx context.Context, cfg *Config) error {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.reap(now); n > 0 {
				logf(cfg, "QUIZ: Reaped %d expired round(s)", n)
			}
		}
	}
}
