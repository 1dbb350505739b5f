package interpreter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/julianstephens/tasklit/internal/lexicon"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/scorer"
)

const fixedID = "0123456789abcdef01234567"

// Thursday afternoon.
var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func newTestInterpreter(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	model := scorer.New(nil, scorer.WithSeed(1), scorer.WithMaxEpochs(20))
	base := []Option{
		WithClock(func() time.Time { return now }),
		WithIDFunc(func(time.Time) string { return fixedID }),
		WithRand(rand.New(rand.NewSource(1))),
	}
	return New(model, append(base, opts...)...)
}

func TestCreateUrgentMeeting(t *testing.T) {
	in := newTestInterpreter(t)

	got := in.Process("Create an urgent meeting with the marketing team tomorrow")

	due := now.AddDate(0, 0, 1)
	want := models.ParsedCommand{
		Action: models.ActionCreate,
		Task: &models.Task{
			ID:       fixedID,
			Content:  "Create Meeting Marketing Team",
			Priority: models.PriorityHigh,
			Category: "work",
			Created:  now,
			Due:      &due,
			Context:  "With: team",
			Type:     models.TypeEvent,
			Status:   models.StatusPending,
		},
		Message: "Created high priority event in work.",
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestListAndCalendar(t *testing.T) {
	in := newTestInterpreter(t)

	tests := []struct {
		input   string
		action  models.Action
		message string
	}{
		{"show", models.ActionList, "Displaying all tasks."},
		{"List everything", models.ActionList, "Displaying all tasks."},
		{"schedule my week", models.ActionCalendar, "Calendar scheduling is under development."},
		{"organize tomorrow", models.ActionCalendar, "Calendar scheduling is under development."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := in.Process(tt.input)
			want := models.ParsedCommand{Action: tt.action, Message: tt.message}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Process(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	in := newTestInterpreter(t)

	tests := []struct {
		input  string
		wantID string
	}{
		{"delete task 65f1c2aa0123456789abcdef", "65f1c2aa0123456789abcdef"},
		{"Remove 65F1C2AA0123456789ABCDEF please", "65f1c2aa0123456789abcdef"},
		{"delete task 12", ""},
		{"delete task 65f1c2aa0123456789abcdeg", ""},
		{"remove it", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := in.Process(tt.input)
			if got.Action != models.ActionDelete {
				t.Fatalf("Action = %v, want delete", got.Action)
			}
			if tt.wantID == "" {
				if got.Task != nil {
					t.Errorf("Task = %+v, want none", got.Task)
				}
				if got.Message != "Please provide a task ID to delete." {
					t.Errorf("Message = %q", got.Message)
				}
				return
			}
			want := &models.Task{
				ID:       tt.wantID,
				Priority: models.PriorityMedium,
				Category: "personal",
				Type:     models.TypeTask,
				Status:   models.StatusPending,
			}
			if diff := cmp.Diff(want, got.Task); diff != "" {
				t.Errorf("stub mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQuotedName(t *testing.T) {
	in := newTestInterpreter(t)

	got := in.Process(`create "Buy milk" task`)

	if got.Action != models.ActionCreate || got.Task == nil {
		t.Fatalf("Process() = %+v, want a created task", got)
	}
	if got.Task.Content != "Buy Milk" {
		t.Errorf("Content = %q, want %q", got.Task.Content, "Buy Milk")
	}
	if got.Task.Category != "shopping" {
		t.Errorf("Category = %q, want shopping", got.Task.Category)
	}
	if got.Task.Priority != models.PriorityLow {
		t.Errorf("Priority = %s, want low", got.Task.Priority)
	}
}

func TestSuggestions(t *testing.T) {
	in := newTestInterpreter(t)

	tests := []struct {
		input string
		want  []string
	}{
		{
			input: "clean the house after work",
			want:  []string{SuggestDueDate, SuggestWorkCategory},
		},
		{
			input: "Prepare slides for the team boss and client tomorrow",
			want:  []string{SuggestMarkHigh},
		},
		{
			input: "do it today",
			want:  []string{SuggestName},
		},
		{
			input: "Write the urgent report for the client today",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := in.Process(tt.input)
			if got.Action != models.ActionCreate {
				t.Fatalf("Action = %v, want create", got.Action)
			}
			if diff := cmp.Diff(tt.want, got.Suggestions, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Suggestions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExplicitDateFallback(t *testing.T) {
	in := newTestInterpreter(t)

	got := in.Process("create dentist appointment on 3 march at 5pm")

	want := time.Date(2027, time.March, 3, 17, 0, 0, 0, time.UTC)
	if got.Task == nil || got.Task.Due == nil || !got.Task.Due.Equal(want) {
		t.Errorf("Due = %v, want %v", got.Task.Due, want)
	}
}

func TestPreciseDatesOverrideBareDates(t *testing.T) {
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "this weekday includes today",
			input: "add dentist this monday",
			want:  monday,
		},
		{
			name:  "next weekday skips today",
			input: "add dentist next monday",
			want:  monday.AddDate(0, 0, 7),
		},
		{
			name:  "clock time applies to a relative day",
			input: "Meeting with the client tomorrow at 5pm",
			want:  time.Date(2026, 10, 13, 17, 0, 0, 0, time.UTC),
		},
		{
			name:  "clock time applies to a weekday",
			input: "call the bank friday at 10:30 am",
			want:  time.Date(2026, 10, 16, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "bare weekday keeps the smart date",
			input: "add dentist monday",
			want:  monday.AddDate(0, 0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t, WithClock(func() time.Time { return monday }))
			got := in.Process(tt.input)
			if got.Task == nil || got.Task.Due == nil {
				t.Fatalf("Process(%q) returned no due date: %+v", tt.input, got.Task)
			}
			if !got.Task.Due.Equal(tt.want) {
				t.Errorf("Due = %v, want %v", *got.Task.Due, tt.want)
			}
		})
	}
}

func TestUpdateAndCompleteStillCreate(t *testing.T) {
	tests := []struct {
		input  string
		action models.Action
		want   models.Priority
	}{
		{"update the report", models.ActionUpdate, models.PriorityMedium},
		{"edit the great party plan", models.ActionUpdate, models.PriorityHigh},
		{"finish the terrible tax problem", models.ActionComplete, models.PriorityLow},
		{"complete the report later", models.ActionComplete, models.PriorityLow},
		{"mark the asap item", models.ActionComplete, models.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			in := newTestInterpreter(t, WithNeuralBlend(0))
			got := in.Process(tt.input)
			if got.Action != tt.action {
				t.Errorf("Action = %v, want %v", got.Action, tt.action)
			}
			if got.Task == nil {
				t.Fatal("fallback path returned no task")
			}
			if got.Task.Priority != tt.want {
				t.Errorf("Priority = %s, want %s", got.Task.Priority, tt.want)
			}
			if got.Task.ID != fixedID || got.Task.Status != models.StatusPending {
				t.Errorf("task not built as a new pending task: %+v", got.Task)
			}
			if len(got.Suggestions) != 0 {
				t.Errorf("fallback path produced suggestions: %v", got.Suggestions)
			}
		})
	}
}

func TestFallbackUsesScorerWhenBlendIsOne(t *testing.T) {
	model := scorer.New(nil, scorer.WithSeed(3), scorer.WithMaxEpochs(20))
	in := New(model, WithNeuralBlend(1), WithClock(func() time.Time { return now }))

	input := "update the client report"
	tokens := lexicon.Tokenize(input)
	want := scorer.Bucket(model.Predict(tokens).Priority)

	got := in.Process(input)
	if got.Task.Priority != want {
		t.Errorf("Priority = %s, want scorer bucket %s", got.Task.Priority, want)
	}
}

func TestFallbackBlendIsSeeded(t *testing.T) {
	run := func() []models.Priority {
		in := newTestInterpreter(t, WithRand(rand.New(rand.NewSource(99))))
		var out []models.Priority
		for i := 0; i < 20; i++ {
			out = append(out, in.Process("update the client report").Task.Priority)
		}
		return out
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("seeded blend not reproducible (-first +second):\n%s", diff)
	}
}

func TestClassificationAlwaysPopulated(t *testing.T) {
	in := newTestInterpreter(t)

	for _, input := range []string{
		"", "   ", "???", "delete 0123456789abcdef01234567", "zzz qqq",
		"update", "complete it", "add", "\"\"", "next",
	} {
		cmd := in.Process(input)
		if cmd.Message == "" {
			t.Errorf("Process(%q) returned an empty message", input)
		}
		if cmd.Task == nil {
			continue
		}
		if cmd.Task.Priority == "" || cmd.Task.Category == "" || cmd.Task.Type == "" {
			t.Errorf("Process(%q) returned unclassified task %+v", input, cmd.Task)
		}
	}
}

func TestSmartPriority(t *testing.T) {
	soon := now.Add(36 * time.Hour)
	week := now.Add(5 * 24 * time.Hour)
	later := now.Add(30 * 24 * time.Hour)

	tests := []struct {
		name  string
		input string
		due   *time.Time
		want  models.Priority
	}{
		{"nothing", "water plants", nil, models.PriorityLow},
		{"due soon only", "water plants", &soon, models.PriorityLow},
		{"urgent and soon", "urgent water plants", &soon, models.PriorityMedium},
		{"two modifiers and soon", "urgent asap water plants", &soon, models.PriorityHigh},
		{"repeated modifier counts once", "urgent urgent water plants", &soon, models.PriorityMedium},
		{"within a week plus people", "call boss and team", &week, models.PriorityMedium},
		{"far away", "urgent asap", &later, models.PriorityMedium},
		{"negative sentiment drags", "urgent asap terrible", &later, models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartPriority(lexicon.Tokenize(tt.input), tt.due, now); got != tt.want {
				t.Errorf("SmartPriority(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTaskContent(t *testing.T) {
	got := ExtractTaskContent(lexicon.Tokenize("urgent report for the client tomorrow"))
	if got != "for the" {
		t.Errorf("ExtractTaskContent() = %q, want %q", got, "for the")
	}
}

func TestStatsAndRetrain(t *testing.T) {
	in := newTestInterpreter(t)

	stats := in.Retrain(10)
	if stats.SamplesCount != len(scorer.DefaultSamples()) {
		t.Errorf("SamplesCount = %d", stats.SamplesCount)
	}
	if diff := cmp.Diff(stats, in.Stats()); diff != "" {
		t.Errorf("Stats() after Retrain mismatch (-want +got):\n%s", diff)
	}
}
