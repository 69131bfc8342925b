package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/scramble/internal/corpus"
	"github.com/verte-zerg/scramble/internal/session"
)

type sequencePicker struct {
	words []string
	next  int
}

func (p *sequencePicker) Pick([]string) (string, error) {
	w := p.words[p.next%len(p.words)]
	p.next++
	return w, nil
}

func newTestSession(roots ...string) *session.Session {
	dict := corpus.NewWordSet("en", []string{"bake", "baker", "pats", "stray"})
	return session.New(corpus.New(roots, dict), "en", session.WithPicker(&sequencePicker{words: roots}))
}

func TestRunScenario(t *testing.T) {
	s := newTestSession("bakery", "pastry")
	input := strings.Join([]string{"Bake", "bake", "zzz", "", "bakery", "bakerz", "breka", ":restart", "stray", ":quit", "pats"}, "\n")
	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(input), &out, s); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{
		"Root word: bakery",
		"+ bake (words 1, letters 4)",
		"! Word used already: Be more original!",
		"! Words of 3 letters or fewer are not allowed: Use a longer word",
		"! Words of 3 letters or fewer are not allowed: Use a longer word",
		"! Your answer equals the root word: Don't cheat",
		"! Word not possible: You can't spell that word from 'bakery'",
		"! Word not recognized: Use a real word",
		"Root word: pastry",
		"+ stray (words 1, letters 5)",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
	if s.Score().Words != 1 {
		t.Fatalf("expected the line after :quit to be ignored, got %+v", s.Score())
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	s := session.New(corpus.New(nil, nil), "en")
	err := Run(context.Background(), strings.NewReader("bake\n"), &bytes.Buffer{}, s)
	if !errors.Is(err, session.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newTestSession("bakery")
	err := Run(ctx, strings.NewReader("bake\n"), &bytes.Buffer{}, s)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunReturnsOnCancelWhileInputIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	t.Cleanup(func() {
		_ = pw.Close()
	})
	s := newTestSession("bakery")

	errc := make(chan error, 1)
	go func() {
		errc <- Run(ctx, pr, &bytes.Buffer{}, s)
	}()
	if _, err := pw.Write([]byte("bake\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancellation")
	}
}

func TestRunBlankLineIsTooShort(t *testing.T) {
	s := newTestSession("bakery")
	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader("   \n"), &out, s); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "! Words of 3 letters or fewer are not allowed") {
		t.Fatalf("expected too short notice for blank line, got %q", out.String())
	}
}
