package interpreter

import (
	"strings"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/models"
)

const (
	SuggestDueDate      = `Add a due date such as "by friday" or "tomorrow" to schedule this task.`
	SuggestWorkCategory = "This mentions work; consider filing it under the work category."
	SuggestMarkHigh     = "Priority was inferred as high; add a keyword like \"urgent\" to make it explicit."
	SuggestName         = "Could not extract a clear task name; wrap the name in quotes."
)

func suggest(task models.Task, text string, tokens []string) []string {
	var out []string
	if task.Due == nil {
		out = append(out, SuggestDueDate)
	}
	if task.Category == models.DefaultCategory && strings.Contains(strings.ToLower(text), "work") {
		out = append(out, SuggestWorkCategory)
	}
	if task.Priority == models.PriorityHigh && !lexicon.HasPriorityLevel(tokens, models.PriorityHigh) {
		out = append(out, SuggestMarkHigh)
	}
	if task.Content == constants.DefaultTaskName {
		out = append(out, SuggestName)
	}
	return out
}
