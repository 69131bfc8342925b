// Package session tracks one play-through: the root word, the words accepted
// so far and the running score.
package session

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/generator"
)

var (
	// ErrEmptyCorpus means no root word can be chosen. Shells treat it as fatal.
	ErrEmptyCorpus = errors.New("corpus has no root words")
	// ErrNotStarted is returned by Submit before the first Start.
	ErrNotStarted = errors.New("session not started")
)

// State is the lifecycle position of a session.
type State int

const (
	// NotStarted is the state before the first Start.
	NotStarted State = iota
	// Active accepts submissions.
	Active
)

// String returns the display value for the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Active:
		return "active"
	}
	return "?"
}

// Score is the running tally of a session.
type Score struct {
	Words   int
	Letters int
}

// Provider supplies root words and answers dictionary lookups.
type Provider interface {
	RootWords() []string
	engine.Dictionary
}

// Picker chooses the root word for a new session.
type Picker interface {
	Pick(words []string) (string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithPicker replaces the time-seeded picker.
func WithPicker(p Picker) Option {
	return func(s *Session) {
		s.picker = p
	}
}

// Snapshot is a copy of the session state for display.
type Snapshot struct {
	State State
	Root  string
	Used  []string
	Score Score
}

// Session owns the mutable state of a single game. It is not safe for
// concurrent use; see Registry.
type Session struct {
	provider Provider
	engine   *engine.Engine
	picker   Picker

	state State
	root  string
	used  []string
	score Score
}

// New returns a session in the NotStarted state.
func New(provider Provider, lang string, opts ...Option) *Session {
	s := &Session{
		provider: provider,
		engine:   engine.New(provider, lang),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.picker == nil {
		s.picker = generator.New()
	}
	return s
}

// Start picks a new root word and clears the used words and score. It may be
// called again at any time to restart.
func (s *Session) Start() error {
	root, err := s.picker.Pick(s.provider.RootWords())
	if err != nil {
		if errors.Is(err, generator.ErrEmpty) {
			return ErrEmptyCorpus
		}
		return fmt.Errorf("failed to pick root word: %w", err)
	}
	s.root = engine.Normalize(root, s.engine.Lang())
	s.used = nil
	s.score = Score{}
	s.state = Active
	return nil
}

// Restart begins a new game; it is Start under the name the shells use.
func (s *Session) Restart() error {
	return s.Start()
}

// Submit normalizes raw and evaluates it. Accepted words are prepended to
// the used list and scored; rejections leave the session untouched.
func (s *Session) Submit(raw string) (engine.Result, error) {
	if s.state != Active {
		return engine.Result{}, ErrNotStarted
	}
	candidate := engine.Normalize(raw, s.engine.Lang())
	res := s.engine.Evaluate(candidate, s.root, s.used)
	if !res.OK() {
		return res, nil
	}
	s.used = append([]string{candidate}, s.used...)
	s.score.Words++
	s.score.Letters += engine.Letters(candidate)
	return res, nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Root returns the current root word, empty before Start.
func (s *Session) Root() string {
	return s.root
}

// Lang returns the dictionary language.
func (s *Session) Lang() string {
	return s.engine.Lang()
}

// Used returns a copy of the accepted words, most recent first.
func (s *Session) Used() []string {
	out := make([]string, len(s.used))
	copy(out, s.used)
	return out
}

// Score returns the running tally.
func (s *Session) Score() Score {
	return s.score
}

// Snapshot copies the visible state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State: s.state,
		Root:  s.root,
		Used:  s.Used(),
		Score: s.score,
	}
}
