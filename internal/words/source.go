// Package words supplies the secret words for rounds. A Source draws
// uniformly at random, with replacement, from an immutable pool.
package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"
)

// ErrUnavailable is returned when a word pool cannot be loaded. It is
// recoverable: callers substitute Fallback so the game stays playable.
var ErrUnavailable = errors.New("word list unavailable")

// Source draws words from a fixed pool. The pool is immutable after
// construction and the only state besides it is the random generator,
// which is guarded by a mutex so one source can serve every session.
type Source struct {
	pool []string
	mu   sync.Mutex
	rng  *rand.Rand
}

// New builds a source over a copy of the given pool. The generator may
// be nil, in which case a time-seeded one is used; tests pass a seeded
// generator for deterministic draws.
func New(pool []string, rng *rand.Rand) (*Source, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty pool", ErrUnavailable)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cp := make([]string, len(pool))
	copy(cp, pool)
	return &Source{pool: cp, rng: rng}, nil
}

// Load reads a pool from a JSON array of strings at the given path.
func Load(path string, rng *rand.Rand) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var pool []string
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return New(pool, rng)
}

// Fallback returns a source over the built-in pool.
func Fallback(rng *rand.Rand) *Source {
	s, _ := New(fallbackPool, rng)
	return s
}

// Next returns one word drawn uniformly at random. Draws are
// independent, so repeats are possible.
func (s *Source) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool[s.rng.Intn(len(s.pool))]
}

// Size returns the pool size.
func (s *Source) Size() int {
	return len(s.pool)
}
