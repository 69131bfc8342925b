// Package generator picks root words for new sessions.
package generator

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrEmpty is returned when there is nothing to pick from.
var ErrEmpty = errors.New("word list is empty")

// Generator selects words from a list using its own random source. It is
// safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible games.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects one word uniformly.
func (g *Generator) Pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", ErrEmpty
	}
	g.mu.Lock()
	idx := g.rnd.Intn(len(words))
	g.mu.Unlock()
	return words[idx], nil
}
