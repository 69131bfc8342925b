// Package engine decides whether a submitted word may join a session.
package engine

import "unicode/utf8"

// MinLength is the shortest accepted word, in letters.
const MinLength = 4

// Reason classifies the outcome of an evaluation.
type Reason int

const (
	// Accepted means every check passed.
	Accepted Reason = iota
	// TooShort rejects words of MinLength-1 letters or fewer.
	TooShort
	// EqualsRoot rejects the root word itself.
	EqualsRoot
	// AlreadyUsed rejects words accepted earlier in the session.
	AlreadyUsed
	// NotPossible rejects words that need letters the root does not have.
	NotPossible
	// NotReal rejects words the dictionary does not recognize.
	NotReal
)

// String returns a stable identifier for the reason.
func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case TooShort:
		return "too_short"
	case EqualsRoot:
		return "equals_root"
	case AlreadyUsed:
		return "already_used"
	case NotPossible:
		return "not_possible"
	case NotReal:
		return "not_real"
	}
	return "unknown"
}

// Result is the outcome of Evaluate for one candidate.
type Result struct {
	Word   string
	Reason Reason
}

// OK reports whether the candidate was accepted.
func (r Result) OK() bool {
	return r.Reason == Accepted
}

// Message returns the user-facing pair for the result.
func (r Result) Message(root string) Message {
	return MessageFor(r.Reason, root)
}

// Dictionary answers whether a word exists in a language.
type Dictionary interface {
	IsReal(word, lang string) bool
}

// DictionaryFunc adapts a function to Dictionary.
type DictionaryFunc func(word, lang string) bool

// IsReal implements Dictionary.
func (f DictionaryFunc) IsReal(word, lang string) bool {
	return f(word, lang)
}

// Engine runs the ordered checks against a dictionary for one language.
type Engine struct {
	dict Dictionary
	lang string
}

// New returns an Engine consulting dict for lang.
func New(dict Dictionary, lang string) *Engine {
	return &Engine{dict: dict, lang: lang}
}

// Lang returns the language passed to the dictionary.
func (e *Engine) Lang() string {
	return e.lang
}

// Evaluate checks an already normalized candidate. The first failing check
// determines the reason; used is only read.
func (e *Engine) Evaluate(candidate, root string, used []string) Result {
	res := Result{Word: candidate}
	switch {
	case utf8.RuneCountInString(candidate) < MinLength:
		res.Reason = TooShort
	case candidate == root:
		res.Reason = EqualsRoot
	case !IsOriginal(candidate, used):
		res.Reason = AlreadyUsed
	case !IsPossible(candidate, root):
		res.Reason = NotPossible
	case e.dict == nil || !e.dict.IsReal(candidate, e.lang):
		res.Reason = NotReal
	default:
		res.Reason = Accepted
	}
	return res
}

// IsOriginal reports whether word is absent from used.
func IsOriginal(word string, used []string) bool {
	for _, u := range used {
		if u == word {
			return false
		}
	}
	return true
}

// IsPossible reports whether word can be spelled from the letters of root,
// using each letter of root at most once.
func IsPossible(word, root string) bool {
	available := make(map[rune]int, len(root))
	for _, r := range root {
		available[r]++
	}
	for _, r := range word {
		if available[r] == 0 {
			return false
		}
		available[r]--
	}
	return true
}

// Letters returns the score contribution of an accepted word.
func Letters(word string) int {
	return utf8.RuneCountInString(word)
}
