package models

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type TaskType string

const (
	TypeTask  TaskType = "task"
	TypeEvent TaskType = "event"
	TypeNote  TaskType = "note"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

const (
	DefaultPriority = PriorityMedium
	DefaultCategory = "personal"
	DefaultType     = TypeTask
)

type Task struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Priority Priority   `json:"priority"`
	Category string     `json:"category"`
	Created  time.Time  `json:"created"`
	Due      *time.Time `json:"due,omitempty"`
	Context  string     `json:"context,omitempty"`
	Type     TaskType   `json:"type"`
	Status   Status     `json:"status"`
}

// ParsePriority maps a label to a Priority, reporting whether it was recognized.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), true
	}
	return DefaultPriority, false
}

// ParseTaskType maps a label to a TaskType, reporting whether it was recognized.
func ParseTaskType(s string) (TaskType, bool) {
	switch TaskType(s) {
	case TypeTask, TypeEvent, TypeNote:
		return TaskType(s), true
	}
	return DefaultType, false
}

// Validate checks the classification invariants of a stored task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if _, ok := ParsePriority(string(t.Priority)); !ok {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	if _, ok := ParseTaskType(string(t.Type)); !ok {
		return fmt.Errorf("invalid type %q", t.Type)
	}
	if t.Category == "" {
		return fmt.Errorf("category is required")
	}
	if t.Status != StatusPending && t.Status != StatusDone {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	return nil
}
