// Package extract resolves dates, recurrences and context annotations from
// normalized words. Every resolution is relative to the now passed in.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tasklit/internal/lexicon"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// months maps full lowercase month names and their common abbreviations.
var months = func() map[string]time.Month {
	m := map[string]time.Month{"sept": time.September}
	for month := time.January; month <= time.December; month++ {
		name := strings.ToLower(month.String())
		m[name] = month
		m[name[:3]] = month
	}
	return m
}()

const monthAlt = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`sept|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec`

var (
	dayMonthPattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)\b`)
	monthDayPattern = regexp.MustCompile(`\b(` + monthAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
)

// GetNextWeekday returns the next occurrence of the named weekday, keeping now's
// clock. A weekday equal to today resolves to today only when includeToday is set;
// otherwise it rolls a full week forward.
func GetNextWeekday(name string, includeToday bool, now time.Time) (time.Time, bool) {
	target, ok := weekdays[strings.ToLower(name)]
	if !ok {
		return time.Time{}, false
	}
	offset := (int(target) - int(now.Weekday()) + 7) % 7
	if offset == 0 && !includeToday {
		offset = 7
	}
	return now.AddDate(0, 0, offset), true
}

// ExtractDate resolves the first relative date indicator in words: today,
// tomorrow, next week, next month or a weekday name.
func ExtractDate(words []string, now time.Time) (time.Time, bool) {
	for i, w := range words {
		switch w {
		case "today", "tonight":
			return now, true
		case "tomorrow":
			return now.AddDate(0, 0, 1), true
		case "next":
			if i+1 >= len(words) {
				continue
			}
			switch words[i+1] {
			case "week":
				return now.AddDate(0, 0, 7), true
			case "month":
				return now.AddDate(0, 1, 0), true
			}
		}
		if d, ok := GetNextWeekday(w, false, now); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// SmartDate is a resolved due date plus any recurrence marker.
type SmartDate struct {
	Due        *time.Time
	Recurrence string
}

// ExtractSmartDate layers recurrence detection over ExtractDate.
func ExtractSmartDate(words []string, now time.Time) SmartDate {
	var sd SmartDate
	if m := lexicon.RecurringPattern.FindStringSubmatch(strings.Join(words, " ")); m != nil {
		sd.Recurrence = m[1]
	}
	if d, ok := ExtractDate(words, now); ok {
		sd.Due = &d
	}
	return sd
}

// ExtractDateTime handles everything ExtractDate does plus "this/next <weekday>",
// explicit day and month dates and clock times such as "5pm" or "10:30 am".
func ExtractDateTime(text string, now time.Time) (time.Time, bool) {
	words := lexicon.Words(text)
	joined := strings.Join(words, " ")

	date, found := qualifiedWeekday(words, now)
	if !found {
		date, found = explicitDate(joined, now)
	}
	if !found {
		date, found = ExtractDate(words, now)
	}

	hour, minute, hasClock := clockTime(strings.ToLower(text))
	if !hasClock {
		return date, found
	}
	if !found {
		date = now
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), true
}

// HasPreciseDate reports whether text carries a "this/next <weekday>" qualifier
// or a clock time, both of which only ExtractDateTime resolves.
func HasPreciseDate(text string, now time.Time) bool {
	if _, ok := qualifiedWeekday(lexicon.Words(text), now); ok {
		return true
	}
	_, _, ok := clockTime(strings.ToLower(text))
	return ok
}

func qualifiedWeekday(words []string, now time.Time) (time.Time, bool) {
	for i := 0; i+1 < len(words); i++ {
		switch words[i] {
		case "this":
			if d, ok := GetNextWeekday(words[i+1], true, now); ok {
				return d, true
			}
		case "next":
			if d, ok := GetNextWeekday(words[i+1], false, now); ok {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// explicitDate resolves "3 march" or "march 3rd" at local midnight, rolling into
// next year when the date has already passed.
func explicitDate(joined string, now time.Time) (time.Time, bool) {
	var dayStr, monthStr string
	if m := dayMonthPattern.FindStringSubmatch(joined); m != nil {
		dayStr, monthStr = m[1], m[2]
	} else if m := monthDayPattern.FindStringSubmatch(joined); m != nil {
		monthStr, dayStr = m[1], m[2]
	} else {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	month := months[monthStr]
	d := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

func clockTime(text string) (hour, minute int, ok bool) {
	m := lexicon.TimeExpressionPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	hour %= 12
	if m[3] == "pm" {
		hour += 12
	}
	return hour, minute, true
}
