// Package lexicon holds the normalizer, stemmer and the static lexical tables the
// interpreter matches against.
package lexicon

import (
	"strings"
)

// minStemLen is the shortest stem a suffix strip may leave behind.
const minStemLen = 3

var contractionReplacer = strings.NewReplacer(
	"n't", " not",
	"'re", " are",
	"'s", " is",
	"'d", " would",
	"'ll", " will",
)

// stripped is the fixed punctuation set removed during normalization.
const stripped = ".,/#!$%^&*;:{}=-_`~()?\"'[]<>@+|\\"

// suffixes are tried in order; the first one that leaves a long enough stem wins.
var suffixes = []string{"ing", "ed", "ly", "es", "s", "ment"}

// Words lowercases text, expands contractions, strips punctuation and splits on
// whitespace. No stemming is applied.
func Words(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	text = contractionReplacer.Replace(text)
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, text)
	return strings.Fields(text)
}

// Tokenize normalizes text and stems every word. The result never contains empty
// tokens.
func Tokenize(text string) []string {
	words := Words(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if t := Stem(w); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Stem strips the first matching suffix when at least minStemLen characters remain.
func Stem(word string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) && len(word)-len(suffix) >= minStemLen {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

// StemAll stems each word in place order.
func StemAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Stem(w)
	}
	return out
}
