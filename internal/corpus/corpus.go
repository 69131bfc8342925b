package corpus

import "github.com/verte-zerg/scramble/internal/engine"

// Corpus pairs the root words of a language with its dictionary.
type Corpus struct {
	roots []string
	dict  engine.Dictionary
}

// New builds a Corpus. roots is used as-is and must not be modified later.
func New(roots []string, dict engine.Dictionary) *Corpus {
	return &Corpus{roots: roots, dict: dict}
}

// RootWords returns the candidate root words.
func (c *Corpus) RootWords() []string {
	return c.roots
}

// IsReal delegates to the dictionary.
func (c *Corpus) IsReal(word, lang string) bool {
	if c.dict == nil {
		return false
	}
	return c.dict.IsReal(word, lang)
}
