// Package namer derives a short display name for a task from free text.
package namer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/models"
)

var (
	quotedPattern   = regexp.MustCompile(`"([^"]*)"|“([^”]*)”`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	titleCaser      = cases.Title(language.English, cases.NoLower)
)

// ExtractTaskName returns the trimmed contents of the first non-empty quoted
// substring in input.
func ExtractTaskName(input string) (string, bool) {
	for _, m := range quotedPattern.FindAllStringSubmatch(input, -1) {
		name := strings.TrimSpace(m[1] + m[2])
		if name != "" {
			return name, true
		}
	}
	return "", false
}

// Title capitalizes the first letter of every word and leaves the rest alone.
func Title(s string) string {
	return titleCaser.String(s)
}

// skipForName reports whether a word carries no naming value: function words,
// time indicators and priority keywords.
func skipForName(word string) bool {
	if lexicon.IsStopword(word) {
		return true
	}
	stem := lexicon.Stem(word)
	return lexicon.IsTimeIndicator(stem) || lexicon.IsPriorityKeyword(stem)
}

// nameWords normalizes a sentence for naming with clock times such as "5pm" or
// "10:30 am" removed.
func nameWords(sentence string) []string {
	return lexicon.Words(lexicon.TimeExpressionPattern.ReplaceAllString(strings.ToLower(sentence), " "))
}

type candidate struct {
	words []string
	score int
}

// candidateFor finds the first verb-group word in a sentence and collects up to
// MaxNameWords meaningful words after it. Only those trailing words count toward
// the score; priority keywords in the sentence add a bonus.
func candidateFor(sentence string) (candidate, bool) {
	words := nameWords(sentence)
	for i, w := range words {
		if _, ok := lexicon.VerbGroup(lexicon.Stem(w)); !ok {
			continue
		}
		var rest []string
		for _, next := range words[i+1:] {
			if len(rest) == constants.MaxNameWords {
				break
			}
			if !skipForName(next) {
				rest = append(rest, next)
			}
		}
		if len(rest) == 0 {
			return candidate{}, false
		}

		tokens := lexicon.StemAll(words)
		score := len(rest)
		if lexicon.HasPriorityLevel(tokens, models.PriorityHigh) {
			score += 2
		}
		if lexicon.HasPriorityLevel(tokens, models.PriorityMedium) {
			score++
		}
		return candidate{words: append([]string{w}, rest...), score: score}, true
	}
	return candidate{}, false
}

func splitSentences(paragraph string) []string {
	var out []string
	for _, s := range sentencePattern.Split(paragraph, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SummarizeTaskName picks the best scoring verb phrase across the sentences of
// paragraph. Without one it falls back to the first few meaningful words of the
// first sentence, and finally to the default task name.
func SummarizeTaskName(paragraph string) string {
	sentences := splitSentences(paragraph)
	if len(sentences) == 0 {
		return constants.DefaultTaskName
	}

	var best candidate
	found := false
	for _, s := range sentences {
		c, ok := candidateFor(s)
		if ok && (!found || c.score > best.score) {
			best, found = c, true
		}
	}
	if found {
		return Title(strings.Join(best.words, " "))
	}

	var fallback []string
	for _, w := range nameWords(sentences[0]) {
		if len(fallback) == constants.FallbackNameWords {
			break
		}
		if !skipForName(w) {
			fallback = append(fallback, w)
		}
	}
	if len(fallback) == 0 {
		return constants.DefaultTaskName
	}
	return Title(strings.Join(fallback, " "))
}

// Name prefers an explicit quoted name over summarization.
func Name(input string) string {
	if name, ok := ExtractTaskName(input); ok {
		return Title(name)
	}
	return SummarizeTaskName(input)
}
