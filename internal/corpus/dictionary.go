package corpus

import "github.com/verte-zerg/scramble/internal/engine"

// WordSet is an in-memory dictionary for a single language.
type WordSet struct {
	lang  string
	words map[string]struct{}
}

// NewWordSet normalizes words the same way candidates are normalized.
func NewWordSet(lang string, words []string) *WordSet {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = engine.Normalize(w, lang)
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &WordSet{lang: lang, words: set}
}

// IsReal implements engine.Dictionary. Lookups for other languages miss.
func (s *WordSet) IsReal(word, lang string) bool {
	if s == nil || lang != s.lang {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Lang returns the language of the set.
func (s *WordSet) Lang() string {
	return s.lang
}

// Len returns the number of distinct words.
func (s *WordSet) Len() int {
	return len(s.words)
}
