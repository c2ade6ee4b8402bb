/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"math/rand/v2"
	"sync"
)

// Shuffler is a goroutine-safe source of shuffles. A non-zero seed makes
// the sequence reproducible.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newShuffler(seed uint64) *Shuffler {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Shuffler{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// shuffle permutes items in place with Fisher-Yates.
func shuffle[T any](s *Shuffler, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(items) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
