package corpus

import (
	"embed"
	"fmt"
)

//go:embed data/roots_en.txt data/dictionary_en.txt
var dataFS embed.FS

// DefaultLang is the language of the embedded word lists.
const DefaultLang = "en"

// DefaultRoots returns the embedded English root words.
func DefaultRoots() ([]string, error) {
	return readEmbedded("data/roots_en.txt")
}

// DefaultDictionary returns the embedded English dictionary as a WordSet.
func DefaultDictionary() (*WordSet, error) {
	words, err := readEmbedded("data/dictionary_en.txt")
	if err != nil {
		return nil, err
	}
	return NewWordSet(DefaultLang, words), nil
}

func readEmbedded(name string) ([]string, error) {
	f, err := dataFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", name, err)
	}
	return words, nil
}
