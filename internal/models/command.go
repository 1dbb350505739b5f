package models

import "fmt"

// Action is the classified intent of a single command.
type Action int

const (
	ActionCreate Action = iota
	ActionList
	ActionDelete
	ActionCalendar
	ActionUpdate
	ActionComplete
)

var actionNames = map[Action]string{
	ActionCreate:   "create",
	ActionList:     "list",
	ActionDelete:   "delete",
	ActionCalendar: "calendar",
	ActionUpdate:   "update",
	ActionComplete: "complete",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	for action, name := range actionNames {
		if name == string(text) {
			*a = action
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", text)
}

// ParsedCommand is the interpreter's result for one command.
type ParsedCommand struct {
	Action      Action   `json:"action"`
	Task        *Task    `json:"task,omitempty"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}
