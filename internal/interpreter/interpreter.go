// Package interpreter turns one free-text command into a ParsedCommand by
// combining lexical rules, the trainable scorer and the extractors.
package interpreter

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/extract"
	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/namer"
	"github.com/julianstephens/tasklit/internal/scorer"
)

const (
	msgList          = "Displaying all tasks."
	msgDeleteNoID    = "Please provide a task ID to delete."
	msgCalendar      = "Calendar scheduling is under development."
	msgDeleteRequest = "Deleting task %s."
	msgCreated       = "Created %s priority %s in %s."
)

type Interpreter struct {
	model *scorer.Model
	now   func() time.Time
	rng   *rand.Rand
	blend float64
	newID func(time.Time) string
}

type Option func(*Interpreter)

// WithClock replaces time.Now for date resolution and task timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) {
		i.now = now
	}
}

// WithRand pins the source deciding between learned and rule-based priority.
func WithRand(r *rand.Rand) Option {
	return func(i *Interpreter) {
		i.rng = r
	}
}

// WithNeuralBlend sets the probability of trusting the scorer in the fallback
// path. Values are clamped to [0, 1].
func WithNeuralBlend(p float64) Option {
	return func(i *Interpreter) {
		i.blend = min(max(p, 0), 1)
	}
}

func WithIDFunc(fn func(time.Time) string) Option {
	return func(i *Interpreter) {
		i.newID = fn
	}
}

// New builds an interpreter around model. A nil model is replaced by a freshly
// trained, unpersisted one.
func New(model *scorer.Model, opts ...Option) *Interpreter {
	if model == nil {
		model = scorer.New(nil)
	}
	i := &Interpreter{
		model: model,
		now:   time.Now,
		blend: constants.DefaultNeuralBlend,
		newID: models.NewTaskID,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.rng == nil {
		i.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return i
}

// Process classifies text and builds the matching result. It never fails; every
// branch returns a well-formed command.
func (i *Interpreter) Process(text string) models.ParsedCommand {
	words := lexicon.Words(text)
	tokens := lexicon.StemAll(words)
	action := lexicon.FirstActionKeyword(tokens)
	logger.Debug("classified command", "action", action, "tokens", len(tokens))

	switch action {
	case models.ActionList:
		return models.ParsedCommand{Action: action, Message: msgList}
	case models.ActionDelete:
		return deleteCommand(words)
	case models.ActionCalendar:
		return models.ParsedCommand{Action: action, Message: msgCalendar}
	case models.ActionCreate:
		return i.create(text, words, tokens)
	case models.ActionUpdate, models.ActionComplete:
		// No in-place edits: these still create a new task.
		cmd := i.fallback(text, words, tokens)
		cmd.Action = action
		return cmd
	default:
		return i.create(text, words, tokens)
	}
}

func deleteCommand(words []string) models.ParsedCommand {
	for _, w := range words {
		if !models.IsTaskID(w) {
			continue
		}
		return models.ParsedCommand{
			Action: models.ActionDelete,
			Task: &models.Task{
				ID:       w,
				Priority: models.DefaultPriority,
				Category: models.DefaultCategory,
				Type:     models.DefaultType,
				Status:   models.StatusPending,
			},
			Message: fmt.Sprintf(msgDeleteRequest, w),
		}
	}
	return models.ParsedCommand{Action: models.ActionDelete, Message: msgDeleteNoID}
}

// draft fills every field except priority.
func (i *Interpreter) draft(text string, words, tokens []string) models.Task {
	now := i.now()
	due := extract.ExtractSmartDate(words, now).Due
	if due == nil || extract.HasPreciseDate(text, now) {
		if d, ok := extract.ExtractDateTime(text, now); ok {
			due = &d
		}
	}
	category, _ := lexicon.FirstCategoryKeyword(tokens)

	return models.Task{
		ID:       i.newID(now),
		Content:  namer.Name(text),
		Category: category,
		Created:  now,
		Due:      due,
		Context:  extract.ExtractContext(words),
		Type:     lexicon.DetectType(tokens),
		Status:   models.StatusPending,
	}
}

func (i *Interpreter) create(text string, words, tokens []string) models.ParsedCommand {
	task := i.draft(text, words, tokens)
	task.Priority = SmartPriority(tokens, task.Due, task.Created)

	return models.ParsedCommand{
		Action:      models.ActionCreate,
		Task:        &task,
		Message:     fmt.Sprintf(msgCreated, task.Priority, task.Type, task.Category),
		Suggestions: suggest(task, text, tokens),
	}
}

func (i *Interpreter) fallback(text string, words, tokens []string) models.ParsedCommand {
	task := i.draft(text, words, tokens)
	task.Priority = i.blendPriority(tokens)

	return models.ParsedCommand{
		Action:  models.ActionCreate,
		Task:    &task,
		Message: fmt.Sprintf(msgCreated, task.Priority, task.Type, task.Category),
	}
}

// blendPriority draws between the scorer's bucketed prediction and the first
// priority keyword, then lets sentiment push a medium result either way.
func (i *Interpreter) blendPriority(tokens []string) models.Priority {
	var p models.Priority
	if i.rng.Float64() < i.blend {
		p = scorer.Bucket(i.model.Predict(tokens).Priority)
	} else {
		p, _ = lexicon.FirstPriorityKeyword(tokens)
	}
	if p != models.PriorityMedium {
		return p
	}
	switch s := lexicon.SentimentScore(tokens); {
	case s > 0:
		return models.PriorityHigh
	case s < 0:
		return models.PriorityLow
	}
	return p
}

// SmartPriority scores urgency modifiers, due-date proximity, relationship
// words and sentiment, then thresholds the total.
func SmartPriority(tokens []string, due *time.Time, now time.Time) models.Priority {
	score := 2 * float64(lexicon.CountUrgency(tokens))
	if due != nil {
		switch until := due.Sub(now); {
		case until <= 2*24*time.Hour:
			score += 3
		case until <= 7*24*time.Hour:
			score += 2
		}
	}
	score += float64(lexicon.CountRelationships(tokens))
	score += 2 * lexicon.SentimentScore(tokens)

	switch {
	case score >= constants.SmartHighScore:
		return models.PriorityHigh
	case score >= constants.SmartMediumScore:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// ExtractTaskContent drops every recognized lexical token and returns the rest.
func ExtractTaskContent(tokens []string) string {
	return lexicon.StripKnown(tokens)
}

func (i *Interpreter) Stats() models.TrainingStats {
	return i.model.Stats()
}

// Retrain reinitializes and retrains the scorer. epochs <= 0 uses the default cap.
func (i *Interpreter) Retrain(epochs int) models.TrainingStats {
	return i.model.Retrain(epochs)
}
