// Package store handles SQLite persistence of imported word lists.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the lexicon.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dictionary_words (
			lang TEXT NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (lang, word)
		);`,
		`CREATE TABLE IF NOT EXISTS root_words (
			lang TEXT NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (lang, word)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func tableFor(kind model.WordKind) (string, error) {
	switch kind {
	case model.DictionaryWords:
		return "dictionary_words", nil
	case model.RootWords:
		return "root_words", nil
	}
	return "", fmt.Errorf("unknown word kind %q", kind)
}

// ImportWords normalizes words and inserts them for lang in one transaction.
// Existing entries are kept. It returns the number of new rows.
func (s *Store) ImportWords(ctx context.Context, kind model.WordKind, lang string, words []string) (inserted int64, err error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT OR IGNORE INTO %s (lang, word) VALUES (?, ?)`, table))
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, w := range words {
		w = engine.Normalize(w, lang)
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, lang, w)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// HasWord reports whether word is in the dictionary of lang.
func (s *Store) HasWord(ctx context.Context, lang, word string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary_words WHERE lang = ? AND word = ?`, lang, word).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListRoots returns the root words of lang in alphabetical order.
func (s *Store) ListRoots(ctx context.Context, lang string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM root_words WHERE lang = ? ORDER BY word`, lang)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var roots []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		roots = append(roots, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roots, nil
}

// CountWords returns the number of entries of kind for lang.
func (s *Store) CountWords(ctx context.Context, kind model.WordKind, lang string) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE lang = ?`, table), lang).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListLangs summarizes every language with at least one entry.
func (s *Store) ListLangs(ctx context.Context) ([]model.LangSummary, error) {
	query := `WITH langs AS (
		SELECT lang FROM dictionary_words
		UNION
		SELECT lang FROM root_words
	)
	SELECT l.lang,
		(SELECT COUNT(*) FROM dictionary_words d WHERE d.lang = l.lang) AS dictionary,
		(SELECT COUNT(*) FROM root_words r WHERE r.lang = l.lang) AS roots
	FROM langs l
	ORDER BY l.lang`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LangSummary
	for rows.Next() {
		var summary model.LangSummary
		if err := rows.Scan(&summary.Lang, &summary.Dictionary, &summary.Roots); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// lookupTimeout bounds a single dictionary query.
const lookupTimeout = 2 * time.Second

// Lexicon is a dictionary backed by the store.
type Lexicon struct {
	store *Store
}

// Lexicon returns a dictionary that queries the store. Each lookup runs
// under its own timeout.
func (s *Store) Lexicon() *Lexicon {
	return &Lexicon{store: s}
}

// IsReal implements engine.Dictionary. Query failures are logged and count
// as unknown words.
func (l *Lexicon) IsReal(word, lang string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	ok, err := l.store.HasWord(ctx, lang, word)
	if err != nil {
		log.Error().Err(err).Str("lang", lang).Str("word", word).Msg("dictionary lookup failed")
		return false
	}
	return ok
}
