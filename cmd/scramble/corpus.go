package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/scramble/internal/config"
	"github.com/verte-zerg/scramble/internal/corpus"
	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/generator"
	"github.com/verte-zerg/scramble/internal/model"
	"github.com/verte-zerg/scramble/internal/session"
	"github.com/verte-zerg/scramble/internal/store"
)

// lexicon is the part of the store the corpus loader needs.
type lexicon interface {
	ListRoots(ctx context.Context, lang string) ([]string, error)
	CountWords(ctx context.Context, kind model.WordKind, lang string) (int, error)
	Lexicon() *store.Lexicon
}

// loadCorpus opens the lexicon database and resolves the root words and
// dictionary for cfg. The returned func closes the database.
func loadCorpus(ctx context.Context, cfg model.Config) (*corpus.Corpus, func(), error) {
	closeFn := func() {}
	var lex lexicon
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		log.Warn().Err(err).Msg("lexicon database unavailable; using word list files")
	} else {
		lex = st
		closeFn = func() {
			if cerr := st.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to close lexicon database")
			}
		}
	}
	c, err := resolveCorpus(ctx, cfg, lex)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return c, closeFn, nil
}

// resolveCorpus picks root words from --roots, then the lexicon, then the
// embedded list; and the dictionary from --dict, then the lexicon, then the
// embedded list. Embedded lists only exist for corpus.DefaultLang.
func resolveCorpus(ctx context.Context, cfg model.Config, lex lexicon) (*corpus.Corpus, error) {
	roots, err := resolveRoots(ctx, cfg, lex)
	if err != nil {
		return nil, err
	}
	roots = playableRoots(roots, cfg.Lang)
	if len(roots) == 0 {
		return nil, fmt.Errorf("no usable root words for language %q", cfg.Lang)
	}
	dict, err := resolveDictionary(ctx, cfg, lex)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("lang", cfg.Lang).Int("roots", len(roots)).Msg("corpus loaded")
	return corpus.New(roots, dict), nil
}

func resolveRoots(ctx context.Context, cfg model.Config, lex lexicon) ([]string, error) {
	if cfg.RootsPath != "" {
		roots, err := corpus.LoadWords(cfg.RootsPath)
		if err != nil {
			return nil, wordListLoadError(cfg.Lang, cfg.RootsPath, err)
		}
		return roots, nil
	}
	if lex != nil {
		roots, err := lex.ListRoots(ctx, cfg.Lang)
		if err != nil {
			return nil, fmt.Errorf("failed to read root words: %w", err)
		}
		if len(roots) > 0 {
			return roots, nil
		}
	}
	if cfg.Lang == corpus.DefaultLang {
		return corpus.DefaultRoots()
	}
	return nil, missingLangError("root words", cfg.Lang, "--roots")
}

func resolveDictionary(ctx context.Context, cfg model.Config, lex lexicon) (engine.Dictionary, error) {
	if cfg.DictionaryPath != "" {
		words, err := corpus.LoadWords(cfg.DictionaryPath)
		if err != nil {
			return nil, wordListLoadError(cfg.Lang, cfg.DictionaryPath, err)
		}
		return corpus.NewWordSet(cfg.Lang, words), nil
	}
	if lex != nil {
		n, err := lex.CountWords(ctx, model.DictionaryWords, cfg.Lang)
		if err != nil {
			return nil, fmt.Errorf("failed to count dictionary words: %w", err)
		}
		if n > 0 {
			return lex.Lexicon(), nil
		}
	}
	if cfg.Lang == corpus.DefaultLang {
		return corpus.DefaultDictionary()
	}
	return nil, missingLangError("dictionary", cfg.Lang, "--dict")
}

// playableRoots normalizes roots and drops words that cannot yield any
// accepted word.
func playableRoots(roots []string, lang string) []string {
	keep := corpus.FilterForLang(lang)
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		r = engine.Normalize(r, lang)
		if engine.Letters(r) < engine.MinLength || !keep(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func newPicker(seed int64) *generator.Generator {
	if seed != 0 {
		return generator.NewSeeded(seed)
	}
	return generator.New()
}

// Compile-time check that the corpus can back a session.
var _ session.Provider = (*corpus.Corpus)(nil)

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func missingLangError(what, lang, flag string) error {
	lines := []string{
		fmt.Sprintf("no %s available for language %q", what, lang),
		"Run: scramble dict langs",
		fmt.Sprintf("Import: scramble dict import --lang %s FILE", lang),
		fmt.Sprintf("Or pass %s FILE", flag),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
