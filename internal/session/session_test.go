package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/scramble/internal/corpus"
	"github.com/verte-zerg/scramble/internal/engine"
)

type fixedPicker struct {
	words []string
	next  int
}

func (p *fixedPicker) Pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", errors.New("empty")
	}
	w := p.words[p.next%len(p.words)]
	p.next++
	return w, nil
}

func newTestSession(t *testing.T, roots ...string) *Session {
	t.Helper()
	dict := corpus.NewWordSet("en", []string{"bake", "baker", "bark", "break", "bray", "yerba", "pastry", "stray", "pats"})
	return New(corpus.New([]string{"bakery", "pastry"}, dict), "en", WithPicker(&fixedPicker{words: roots}))
}

func TestSubmitBeforeStart(t *testing.T) {
	s := newTestSession(t, "bakery")
	if s.State() != NotStarted {
		t.Fatalf("expected not started, got %s", s.State())
	}
	if _, err := s.Submit("bake"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestStartEmptyCorpus(t *testing.T) {
	s := New(corpus.New(nil, nil), "en")
	if err := s.Start(); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if s.State() != NotStarted {
		t.Fatalf("expected state to stay not started")
	}
}

func TestBakeryScenario(t *testing.T) {
	s := newTestSession(t, "bakery")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Root() != "bakery" {
		t.Fatalf("unexpected root %q", s.Root())
	}

	steps := []struct {
		input string
		want  engine.Reason
	}{
		{"bake", engine.Accepted},
		{"bake", engine.AlreadyUsed},
		{"zzz", engine.TooShort},
		{"bakery", engine.EqualsRoot},
		{"bakerz", engine.NotPossible},
		{"breka", engine.NotReal},
	}
	for _, step := range steps {
		res, err := s.Submit(step.input)
		if err != nil {
			t.Fatalf("submit %q: %v", step.input, err)
		}
		if res.Reason != step.want {
			t.Fatalf("submit %q: expected %s, got %s", step.input, step.want, res.Reason)
		}
	}
	if got := s.Score(); got != (Score{Words: 1, Letters: 4}) {
		t.Fatalf("unexpected score %+v", got)
	}
	if diff := cmp.Diff([]string{"bake"}, s.Used()); diff != "" {
		t.Fatalf("unexpected used words (-want +got):\n%s", diff)
	}
}

func TestSubmitNormalizesAndPrepends(t *testing.T) {
	s := newTestSession(t, "bakery")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, raw := range []string{"  Bake ", "BARK\n", "yerba"} {
		before := s.Score()
		res, err := s.Submit(raw)
		if err != nil || !res.OK() {
			t.Fatalf("expected %q to be accepted, got %+v, %v", raw, res, err)
		}
		after := s.Score()
		if after.Words != before.Words+1 {
			t.Fatalf("expected word count to grow by 1")
		}
		if after.Letters != before.Letters+len(res.Word) {
			t.Fatalf("expected letters to grow by %d", len(res.Word))
		}
		if s.Used()[0] != res.Word {
			t.Fatalf("expected %q at the front, got %v", res.Word, s.Used())
		}
	}
	if diff := cmp.Diff([]string{"yerba", "bark", "bake"}, s.Used()); diff != "" {
		t.Fatalf("unexpected used words (-want +got):\n%s", diff)
	}
}

func TestScoreMatchesUsedWords(t *testing.T) {
	s := newTestSession(t, "bakery")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, raw := range []string{"bake", "nope", "baker", "bake", "ba", "break", "bray"} {
		if _, err := s.Submit(raw); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	used := s.Used()
	letters := 0
	for _, w := range used {
		letters += len(w)
	}
	if got := s.Score(); got.Words != len(used) || got.Letters != letters {
		t.Fatalf("score %+v does not match used words %v", got, used)
	}
}

func TestRejectionLeavesStateUnchanged(t *testing.T) {
	s := newTestSession(t, "bakery")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Submit("bake"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := s.Snapshot()
	first, _ := s.Submit("breka")
	second, _ := s.Submit("breka")
	if first != second {
		t.Fatalf("expected repeated rejection to be identical: %+v vs %+v", first, second)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Fatalf("rejection changed state (-before +after):\n%s", diff)
	}
}

func TestRestartResetsState(t *testing.T) {
	s := newTestSession(t, "bakery", "pastry")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Submit("bake"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != Active || snap.Root != "pastry" {
		t.Fatalf("unexpected snapshot after restart: %+v", snap)
	}
	if len(snap.Used) != 0 || snap.Score != (Score{}) {
		t.Fatalf("expected fresh used words and score, got %+v", snap)
	}
	res, err := s.Submit("stray")
	if err != nil || !res.OK() {
		t.Fatalf("expected stray to be accepted from pastry, got %+v, %v", res, err)
	}
}

func TestUsedReturnsCopy(t *testing.T) {
	s := newTestSession(t, "bakery")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Submit("bake"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	used := s.Used()
	used[0] = "mutated"
	if s.Used()[0] != "bake" {
		t.Fatalf("expected Used to return a copy")
	}
}
