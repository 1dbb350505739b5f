package lexicon

import "github.com/julianstephens/tasklit/internal/models"

// Categories is ordered; the scorer encodes a category as its index over len(Categories).
var Categories = []string{"work", "personal", "health", "shopping", "education", "finance", "social"}

var PriorityKeywords = map[models.Priority][]string{
	models.PriorityHigh:   {"urgent", "asap", "critical", "important", "immediately", "emergency", "crucial", "vital", "high"},
	models.PriorityMedium: {"soon", "moderate", "normal", "regular", "standard", "medium"},
	models.PriorityLow:    {"later", "eventually", "someday", "whenever", "optional", "low", "minor", "maybe"},
}

var CategoryKeywords = map[string][]string{
	"work":      {"work", "office", "meeting", "project", "report", "client", "presentation", "deadline", "boss", "colleague", "email", "proposal"},
	"personal":  {"personal", "home", "family", "birthday", "errand", "clean", "laundry", "house"},
	"health":    {"health", "doctor", "gym", "exercise", "workout", "medicine", "dentist", "yoga", "run", "walk"},
	"shopping":  {"shopping", "buy", "shop", "grocery", "groceries", "milk", "store", "purchase", "order"},
	"education": {"study", "learn", "course", "class", "homework", "exam", "lecture", "book", "school"},
	"finance":   {"finance", "bank", "bill", "pay", "tax", "invoice", "rent", "money", "budget"},
	"social":    {"social", "party", "dinner", "lunch", "visit", "friend", "wedding"},
}

var ActionKeywords = map[models.Action][]string{
	models.ActionList:     {"list", "show", "display"},
	models.ActionDelete:   {"delete", "remove"},
	models.ActionCalendar: {"schedule", "organize", "view"},
	models.ActionCreate:   {"create", "add", "new", "make"},
	models.ActionUpdate:   {"update", "change", "edit", "modify"},
	models.ActionComplete: {"complete", "finish", "done", "mark"},
}

// actionOrder fixes lookup precedence when a token could match more than one action.
var actionOrder = []models.Action{
	models.ActionList,
	models.ActionDelete,
	models.ActionCalendar,
	models.ActionCreate,
	models.ActionUpdate,
	models.ActionComplete,
}

var TimeIndicators = []string{
	"today", "tomorrow", "tonight", "yesterday", "week", "month", "year",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"morning", "afternoon", "evening", "next", "this", "by", "before", "until", "due",
}

var UrgencyModifiers = []string{"urgent", "asap", "immediately", "critical", "emergency", "important", "crucial", "vital"}

var RelationshipWords = []string{"team", "colleague", "boss", "manager", "client", "family", "friend", "mom", "dad", "partner", "wife", "husband", "kids"}

var LocationWords = []string{"home", "office", "gym", "school", "store", "library", "park", "hospital", "airport", "restaurant", "cafe", "mall"}

var PositiveWords = []string{"good", "great", "happy", "excited", "love", "enjoy", "fun", "nice", "awesome", "excellent", "celebrate"}

var NegativeWords = []string{"bad", "stressful", "worried", "hate", "annoying", "difficult", "boring", "terrible", "problem", "issue", "overdue"}

var VerbGroups = map[string][]string{
	"creation":      {"create", "write", "build", "make", "draft", "design", "prepare", "develop"},
	"modification":  {"update", "edit", "change", "fix", "revise", "modify", "improve"},
	"review":        {"review", "check", "read", "analyze", "examine", "inspect", "evaluate"},
	"completion":    {"finish", "complete", "submit", "deliver", "finalize", "send"},
	"communication": {"call", "email", "meet", "discuss", "contact", "message", "reply", "talk"},
	"planning":      {"plan", "schedule", "organize", "arrange", "book", "research"},
}

// verbGroupOrder fixes lookup precedence across verb groups.
var verbGroupOrder = []string{"creation", "modification", "review", "completion", "communication", "planning"}

var TypeKeywords = map[models.TaskType][]string{
	models.TypeEvent: {"event", "meeting"},
	models.TypeNote:  {"note", "document"},
}
