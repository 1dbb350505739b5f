package lexicon

import (
	"sort"
	"strings"

	"github.com/julianstephens/tasklit/internal/models"
)

type wordSet map[string]struct{}

func newStemSet(lists ...[]string) wordSet {
	set := make(wordSet)
	for _, list := range lists {
		for _, w := range list {
			set[Stem(w)] = struct{}{}
		}
	}
	return set
}

func (s wordSet) has(token string) bool {
	_, ok := s[token]
	return ok
}

var (
	prioritySets  = map[models.Priority]wordSet{}
	categorySets  = map[string]wordSet{}
	actionSets    = map[models.Action]wordSet{}
	verbSets      = map[string]wordSet{}
	typeSets      = map[models.TaskType]wordSet{}
	positiveSet   wordSet
	negativeSet   wordSet
	timeSet       wordSet
	urgencySet    wordSet
	relationSet   wordSet
	locationSet   wordSet
	knownSet      wordSet
	priorityOrder = []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}
)

func init() {
	var all [][]string
	for level, words := range PriorityKeywords {
		prioritySets[level] = newStemSet(words)
		all = append(all, words)
	}
	for cat, words := range CategoryKeywords {
		categorySets[cat] = newStemSet(words)
		all = append(all, words)
	}
	for action, words := range ActionKeywords {
		actionSets[action] = newStemSet(words)
		all = append(all, words)
	}
	for group, words := range VerbGroups {
		verbSets[group] = newStemSet(words)
	}
	for typ, words := range TypeKeywords {
		typeSets[typ] = newStemSet(words)
		all = append(all, words)
	}
	positiveSet = newStemSet(PositiveWords)
	negativeSet = newStemSet(NegativeWords)
	timeSet = newStemSet(TimeIndicators)
	urgencySet = newStemSet(UrgencyModifiers)
	relationSet = newStemSet(RelationshipWords)
	locationSet = newStemSet(LocationWords)
	all = append(all, TimeIndicators, UrgencyModifiers, RelationshipWords, LocationWords)
	knownSet = newStemSet(all...)
}

// FirstPriorityKeyword returns the level of the first token that is a priority keyword.
func FirstPriorityKeyword(tokens []string) (models.Priority, bool) {
	for _, tok := range tokens {
		for _, level := range priorityOrder {
			if prioritySets[level].has(tok) {
				return level, true
			}
		}
	}
	return models.DefaultPriority, false
}

// FirstCategoryKeyword returns the category of the first token found in any category vocabulary.
func FirstCategoryKeyword(tokens []string) (string, bool) {
	for _, tok := range tokens {
		for _, cat := range Categories {
			if categorySets[cat].has(tok) {
				return cat, true
			}
		}
	}
	return models.DefaultCategory, false
}

// FirstActionKeyword returns the action of the first action keyword, or create.
func FirstActionKeyword(tokens []string) models.Action {
	for _, tok := range tokens {
		for _, action := range actionOrder {
			if actionSets[action].has(tok) {
				return action
			}
		}
	}
	return models.ActionCreate
}

// DetectType resolves the task type by keyword presence; events win over notes.
func DetectType(tokens []string) models.TaskType {
	for _, typ := range []models.TaskType{models.TypeEvent, models.TypeNote} {
		for _, tok := range tokens {
			if typeSets[typ].has(tok) {
				return typ
			}
		}
	}
	return models.TypeTask
}

// SentimentScore is (positive - negative) / (positive + negative) over the tokens,
// or 0 when no sentiment word occurs.
func SentimentScore(tokens []string) float64 {
	var pos, neg int
	for _, tok := range tokens {
		if positiveSet.has(tok) {
			pos++
		}
		if negativeSet.has(tok) {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// CountUrgency counts distinct urgency modifiers present in tokens.
func CountUrgency(tokens []string) int {
	return countDistinct(tokens, urgencySet)
}

// CountRelationships counts distinct relationship words present in tokens.
func CountRelationships(tokens []string) int {
	return countDistinct(tokens, relationSet)
}

func countDistinct(tokens []string, set wordSet) int {
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if set.has(tok) {
			seen[tok] = true
		}
	}
	return len(seen)
}

// FirstLocation returns the first word whose stem is a known location.
func FirstLocation(words []string) (string, bool) {
	return firstIn(words, locationSet)
}

// FirstRelationship returns the first word whose stem is a known relationship word.
func FirstRelationship(words []string) (string, bool) {
	return firstIn(words, relationSet)
}

func firstIn(words []string, set wordSet) (string, bool) {
	for _, w := range words {
		if set.has(Stem(w)) {
			return w, true
		}
	}
	return "", false
}

// VerbGroup returns the verb group a token belongs to.
func VerbGroup(token string) (string, bool) {
	for _, group := range verbGroupOrder {
		if verbSets[group].has(token) {
			return group, true
		}
	}
	return "", false
}

// IsTimeIndicator reports whether the token is a time indicator.
func IsTimeIndicator(token string) bool {
	return timeSet.has(token)
}

// IsPriorityKeyword reports whether the token is a keyword of any priority level.
func IsPriorityKeyword(token string) bool {
	for _, set := range prioritySets {
		if set.has(token) {
			return true
		}
	}
	return false
}

// HasPriorityLevel reports whether any token is a keyword of the given level.
func HasPriorityLevel(tokens []string, level models.Priority) bool {
	for _, tok := range tokens {
		if prioritySets[level].has(tok) {
			return true
		}
	}
	return false
}

// StripKnown drops every token that appears in a lexical table and joins the rest.
func StripKnown(tokens []string) string {
	var rest []string
	for _, tok := range tokens {
		if !knownSet.has(tok) {
			rest = append(rest, tok)
		}
	}
	return strings.Join(rest, " ")
}

// Vocabulary returns every stemmed token from the lexical tables and sentiment lists,
// sorted and deduplicated.
func Vocabulary() []string {
	set := newStemSet(PositiveWords, NegativeWords)
	for tok := range knownSet {
		set[tok] = struct{}{}
	}
	for _, vs := range verbSets {
		for tok := range vs {
			set[tok] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(set))
	for tok := range set {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	return vocab
}
