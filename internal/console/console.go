// Package console runs a game over line-oriented input such as a pipe.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/scramble/internal/session"
)

const (
	cmdRestart = ":restart"
	cmdQuit    = ":quit"
)

// Run starts the session and treats every input line as a submission until
// EOF, ":quit" or ctx cancellation. ":restart" begins a new game. Blank lines
// are submitted too and come back as too short.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) error {
	if err := s.Start(); err != nil {
		return err
	}
	if err := printRoot(out, s); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	lines, scanErr := scanLines(done, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case cmdQuit:
			return nil
		case cmdRestart:
			if err := s.Restart(); err != nil {
				return err
			}
			if err := printRoot(out, s); err != nil {
				return err
			}
			continue
		}

		res, err := s.Submit(line)
		if err != nil {
			return err
		}
		if res.OK() {
			score := s.Score()
			if _, err := fmt.Fprintf(out, "+ %s (words %d, letters %d)\n", res.Word, score.Words, score.Letters); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "! %s\n", res.Message(s.Root())); err != nil {
			return err
		}
	}
}

// scanLines reads in on its own goroutine so a quiet reader does not block
// cancellation. The error channel yields the scanner error once lines closes.
// After done closes the goroutine exits on its next line; a Read in progress
// still has to return first.
func scanLines(done <-chan struct{}, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func printRoot(out io.Writer, s *session.Session) error {
	_, err := fmt.Fprintf(out, "Root word: %s\n", s.Root())
	return err
}
