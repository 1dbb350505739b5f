package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

// LoadLocation loads an IANA timezone. "Local" and the empty string resolve to
// the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Clock returns a time source that reports the current time in timezone, for
// resolving relative dates such as "tomorrow" against the user's calendar day.
func Clock(timezone string) (func() time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// ClockFromSettings is Clock for the configured timezone.
func ClockFromSettings(settings models.Settings) (func() time.Time, error) {
	return Clock(settings.Timezone)
}

// FormatDue renders a due date in loc. Dates at midnight show the day only.
func FormatDue(due time.Time, loc *time.Location) string {
	due = due.In(loc)
	if due.Hour() == 0 && due.Minute() == 0 {
		return due.Format(constants.DateFormat)
	}
	return due.Format(constants.DateFormat + " " + constants.TimeFormat)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether a pending task's due day is before now's day.
func IsOverdue(task models.Task, now time.Time) bool {
	if task.Due == nil || task.Status == models.StatusDone {
		return false
	}
	return StartOfDay(task.Due.In(now.Location())).Before(StartOfDay(now))
}
