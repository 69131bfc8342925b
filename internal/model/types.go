// Package model defines shared data structures.
package model

import "time"

// Config defines game settings after flags and the config file are merged.
type Config struct {
	Lang           string
	RootsPath      string
	DictionaryPath string
	Seed           int64
	Plain          bool
}

// ServerConfig defines settings for the HTTP shell.
type ServerConfig struct {
	Addr    string
	IdleTTL time.Duration
}

// WordKind selects which word list of the lexicon an operation targets.
type WordKind string

const (
	// DictionaryWords are the words considered real.
	DictionaryWords WordKind = "dictionary"
	// RootWords are the words a session may start from.
	RootWords WordKind = "roots"
)

// LangSummary counts the lexicon entries of one language.
type LangSummary struct {
	Lang       string
	Dictionary int
	Roots      int
}
