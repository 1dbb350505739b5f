package extract

import (
	"strings"

	"github.com/julianstephens/tasklit/internal/lexicon"
)

// ExtractContext collects labeled fragments for a location, a relationship and
// any deadline, dependency, recurrence, duration or condition phrase, joined by "; ".
func ExtractContext(words []string) string {
	var parts []string
	if loc, ok := lexicon.FirstLocation(words); ok {
		parts = append(parts, "Location: "+loc)
	}
	if who, ok := lexicon.FirstRelationship(words); ok {
		parts = append(parts, "With: "+who)
	}

	joined := strings.Join(words, " ")
	for _, p := range []struct {
		label   string
		extract func(string) string
	}{
		{"Deadline", submatch(lexicon.DeadlinePattern.FindStringSubmatch)},
		{"Depends on", submatch(lexicon.DependencyPattern.FindStringSubmatch)},
		{"Recurring", submatch(lexicon.RecurringPattern.FindStringSubmatch)},
		{"Duration", submatch(lexicon.DurationPattern.FindStringSubmatch)},
		{"Condition", lexicon.ConditionalPattern.FindString},
	} {
		if v := p.extract(joined); v != "" {
			parts = append(parts, p.label+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}

func submatch(find func(string) []string) func(string) string {
	return func(s string) string {
		if m := find(s); m != nil {
			return m[1]
		}
		return ""
	}
}
