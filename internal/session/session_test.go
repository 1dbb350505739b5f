package session

import (
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tasklit/internal/interpreter"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/scorer"
	"github.com/julianstephens/tasklit/internal/storage"
)

var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func setupSession(t *testing.T) (*Session, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "tasklit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	ids := 0
	model := scorer.New(store, scorer.WithSeed(1), scorer.WithMaxEpochs(20))
	interp := interpreter.New(model,
		interpreter.WithClock(func() time.Time { return now }),
		interpreter.WithRand(rand.New(rand.NewSource(1))),
		interpreter.WithIDFunc(func(time.Time) string {
			ids++
			return strings.Repeat("0", 23) + string(rune('0'+ids))
		}),
	)
	return New(interp, store, 50), store
}

func TestHandleRejectsEmpty(t *testing.T) {
	s, _ := setupSession(t)
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := s.Handle(input); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Handle(%q) error = %v, want ErrEmptyCommand", input, err)
		}
	}
}

func TestCreatePersists(t *testing.T) {
	s, store := setupSession(t)

	res, err := s.Handle("Create an urgent meeting with the marketing team tomorrow")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.Command.Task == nil {
		t.Fatal("Handle() returned no task")
	}

	got, err := store.GetTask(res.Command.Task.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Content != "Create Meeting Marketing Team" || got.Priority != models.PriorityHigh {
		t.Errorf("stored task = %+v", got)
	}
}

func TestUpdateStillCreates(t *testing.T) {
	s, store := setupSession(t)

	res, err := s.Handle("update the report")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.Command.Action != models.ActionUpdate {
		t.Errorf("Action = %v, want update", res.Command.Action)
	}
	tasks, _ := store.GetAllTasks()
	if len(tasks) != 1 {
		t.Errorf("stored %d tasks, want 1", len(tasks))
	}
}

func TestListRendersCanvas(t *testing.T) {
	s, _ := setupSession(t)

	res, err := s.Handle("show")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.Command.Message != "Displaying all tasks." {
		t.Errorf("Message = %q", res.Command.Message)
	}
	if !strings.Contains(res.Output, "No tasks yet.") {
		t.Errorf("Output missing empty canvas:\n%s", res.Output)
	}

	if _, err := s.Handle(`add "Buy milk" task`); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	res, err = s.Handle("list")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(res.Output, "Buy Milk") || !strings.Contains(res.Output, "SHOPPING") {
		t.Errorf("Output missing created task:\n%s", res.Output)
	}
}

func TestDelete(t *testing.T) {
	s, store := setupSession(t)

	created, err := s.Handle(`create "Pay rent" task`)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	id := created.Command.Task.ID

	tests := []struct {
		name     string
		input    string
		wantMsg  string
		wantTask bool
	}{
		{
			name:    "missing id",
			input:   "delete task 65f1c2aa0123456789abcdef",
			wantMsg: "Task 65f1c2aa0123456789abcdef not found.",
		},
		{
			name:    "no id",
			input:   "delete task 12",
			wantMsg: "Please provide a task ID to delete.",
		},
		{
			name:     "existing id",
			input:    "delete " + id,
			wantMsg:  "Deleted task: Pay Rent",
			wantTask: true,
		},
		{
			name:    "already deleted",
			input:   "delete " + id,
			wantMsg: "Task " + id + " not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Handle(tt.input)
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if res.Command.Action != models.ActionDelete {
				t.Errorf("Action = %v, want delete", res.Command.Action)
			}
			if res.Command.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Command.Message, tt.wantMsg)
			}
			if (res.Command.Task != nil) != tt.wantTask {
				t.Errorf("Task = %+v, wantTask %v", res.Command.Task, tt.wantTask)
			}
		})
	}

	if _, err := store.GetTask(id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetTask() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCalendarPassthrough(t *testing.T) {
	s, store := setupSession(t)

	res, err := s.Handle("schedule my week")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if res.Command.Message != "Calendar scheduling is under development." {
		t.Errorf("Message = %q", res.Command.Message)
	}
	tasks, _ := store.GetAllTasks()
	if len(tasks) != 0 {
		t.Errorf("calendar stored %d tasks", len(tasks))
	}
}

func TestCompleteAndCanvas(t *testing.T) {
	s, _ := setupSession(t)

	res, err := s.Handle("write the report, depends on budget review")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	done, err := s.Complete(res.Command.Task.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if done.Status != models.StatusDone {
		t.Errorf("Status = %s, want done", done.Status)
	}

	out, err := s.Canvas(true)
	if err != nil {
		t.Fatalf("Canvas() error = %v", err)
	}
	if !strings.Contains(out, "[done]") || !strings.Contains(out, "Depends on: budget review") {
		t.Errorf("advanced canvas missing status or dependency:\n%s", out)
	}

	if _, err := s.Complete("ffffffffffffffffffffffff"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Complete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestScorerWeightsPersisted(t *testing.T) {
	_, store := setupSession(t)
	if _, err := store.Get("tasklit.scorer.weights"); err != nil {
		t.Errorf("weights not persisted: %v", err)
	}
}
