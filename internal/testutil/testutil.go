// Package testutil provides deterministic substitutes for the ambient
// sources of nondeterminism: session tokens, clocks, randomness, and a
// silenced logger.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// FixedTokens returns predetermined session tokens in order, enabling
// golden comparison of booted output. Safe for concurrent use.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order and
// panics when exhausted, so a test consuming more tokens than it
// declared fails loudly.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (f *FixedTokens) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.tokens) {
		panic(fmt.Sprintf("testutil: all %d fixed tokens exhausted", len(f.tokens)))
	}
	t := f.tokens[f.idx]
	f.idx++
	return t
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Rand returns a seeded random source for reproducible sampling.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
