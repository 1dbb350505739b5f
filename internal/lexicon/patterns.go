package lexicon

import "regexp"

// Pattern bank. All patterns run against normalized (lowercase, punctuation-free) text.
var (
	DeadlinePattern          = regexp.MustCompile(`\b(?:by|before|until|due)\s+(\w+(?:\s+\w+)?)`)
	PriorityPattern          = regexp.MustCompile(`\b(urgent|asap|critical|important|high priority|low priority)\b`)
	TimeExpressionPattern    = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	SubjectVerbObjectPattern = regexp.MustCompile(`^(\w+)\s+(\w+)\s+(.+)$`)
	ConditionalPattern       = regexp.MustCompile(`\b(if|when|unless|once)\s+(\w+(?:\s+\w+){0,3})`)
	QuantityPattern          = regexp.MustCompile(`\b(\d+)\s+(hours?|minutes?|days?|weeks?|items?|pages?)\b`)
	StatusPattern            = regexp.MustCompile(`\b(pending|done|completed|in progress|blocked)\b`)
	RelationPattern          = regexp.MustCompile(`\b(depends on|blocked by|requires|waiting for|after)\s+(\w+(?:\s+\w+){0,3})`)

	DependencyPattern = regexp.MustCompile(`\b(?:depends on|blocked by|requires|waiting for)\s+(\w+(?:\s+\w+){0,3})`)
	RecurringPattern  = regexp.MustCompile(`\b(every\s+(?:day|week|month|year|monday|tuesday|wednesday|thursday|friday|saturday|sunday)|daily|weekly|monthly|yearly)\b`)
	DurationPattern   = regexp.MustCompile(`\b(\d+\s*(?:hours?|hrs?|minutes?|mins?|days?|weeks?))\b`)
)
