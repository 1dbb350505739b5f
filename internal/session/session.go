// Package session connects interpreted commands to a task store: it persists
// created tasks, resolves deletes against stored ids and renders listings.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tasklit/internal/canvas"
	"github.com/julianstephens/tasklit/internal/interpreter"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/storage"
)

// ErrEmptyCommand is returned for blank input; the interpreter never sees it.
var ErrEmptyCommand = errors.New("command is empty")

// TaskStore is the subset of storage.Provider a session needs.
type TaskStore interface {
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
}

// Result is the outcome of one handled command. Output carries rendered text
// for commands that produce it (list).
type Result struct {
	Command models.ParsedCommand `json:"command"`
	Output  string               `json:"output,omitempty"`
}

type Session struct {
	interp *interpreter.Interpreter
	store  TaskStore
	width  int
}

// New returns a session rendering canvases width columns wide.
func New(interp *interpreter.Interpreter, store TaskStore, width int) *Session {
	return &Session{interp: interp, store: store, width: width}
}

// Handle interprets text and applies the result to the store.
func (s *Session) Handle(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyCommand
	}

	cmd := s.interp.Process(text)
	res := Result{Command: cmd}

	switch cmd.Action {
	case models.ActionList:
		out, err := s.Canvas(false)
		if err != nil {
			return Result{}, err
		}
		res.Output = out
	case models.ActionDelete:
		if cmd.Task == nil {
			return res, nil
		}
		return s.delete(res)
	case models.ActionCreate, models.ActionUpdate, models.ActionComplete:
		if cmd.Task == nil {
			return res, nil
		}
		if err := s.store.AddTask(*cmd.Task); err != nil {
			return Result{}, fmt.Errorf("saving task: %w", err)
		}
		logger.Debug("task saved", "id", cmd.Task.ID, "action", cmd.Action)
	case models.ActionCalendar:
	}
	return res, nil
}

func (s *Session) delete(res Result) (Result, error) {
	id := res.Command.Task.ID
	task, err := s.store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		res.Command.Task = nil
		res.Command.Message = fmt.Sprintf("Task %s not found.", id)
		return res, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("looking up task %s: %w", id, err)
	}

	if err := s.store.DeleteTask(id); err != nil {
		return Result{}, fmt.Errorf("deleting task %s: %w", id, err)
	}
	logger.Debug("task deleted", "id", id)
	res.Command.Task = &task
	res.Command.Message = "Deleted task: " + task.Content
	return res, nil
}

// Tasks returns every stored task in insertion order.
func (s *Session) Tasks() ([]models.Task, error) {
	tasks, err := s.store.GetAllTasks()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, nil
}

// Canvas renders the stored tasks, with the dependency listing when advanced.
func (s *Session) Canvas(advanced bool) (string, error) {
	tasks, err := s.Tasks()
	if err != nil {
		return "", err
	}
	if advanced {
		return canvas.RenderAdvanced(tasks, s.width), nil
	}
	return canvas.Render(tasks, s.width), nil
}

// Complete marks a stored task done.
func (s *Session) Complete(id string) (models.Task, error) {
	task, err := s.store.GetTask(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("looking up task %s: %w", id, err)
	}
	task.Status = models.StatusDone
	if err := s.store.UpdateTask(task); err != nil {
		return models.Task{}, fmt.Errorf("updating task %s: %w", id, err)
	}
	return task, nil
}

func (s *Session) Stats() models.TrainingStats {
	return s.interp.Stats()
}

// Retrain retrains the scorer; epochs <= 0 uses the configured cap.
func (s *Session) Retrain(epochs int) models.TrainingStats {
	return s.interp.Retrain(epochs)
}
