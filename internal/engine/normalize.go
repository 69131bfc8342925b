package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims whitespace, composes the text to NFC and lowercases it
// using the casing rules of lang.
func Normalize(raw, lang string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return cases.Lower(languageTag(lang)).String(s)
}

func languageTag(lang string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return language.Und
	}
	return tag
}
