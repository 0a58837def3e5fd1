// Package task holds the task model and the pure calendar, filter, and
// statistics helpers that operate on it.
package task

import (
	"time"
)

type Category string

const (
	CategoryPersonal  Category = "persoonlijk"
	CategoryWork      Category = "werk"
	CategoryGroceries Category = "boodschappen"
	CategoryHousehold Category = "huishouden"
	CategoryHealth    Category = "gezondheid"
	CategoryOther     Category = "overig"
)

type Priority string

const (
	PriorityLow    Priority = "laag"
	PriorityNormal Priority = "normaal"
	PriorityHigh   Priority = "hoog"
)

// Task is a single to-do item. Due is day-granular; DueTime, when set, is a
// local wall-clock "HH:MM" string.
type Task struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	Category  Category   `json:"category"`
	Priority  Priority   `json:"priority"`
	Due       *time.Time `json:"date,omitempty"`
	DueTime   string     `json:"time,omitempty"`
	Duration  int        `json:"duration,omitempty"`
	Done      bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

// ParseCategory maps free-form input onto the closed category set, falling
// back to "overig" for anything unknown.
func ParseCategory(v string) Category {
	switch Category(v) {
	case CategoryPersonal, CategoryWork, CategoryGroceries,
		CategoryHousehold, CategoryHealth, CategoryOther:
		return Category(v)
	default:
		return CategoryOther
	}
}

// ParsePriority maps free-form input onto the priority set, falling back to
// "normaal".
func ParsePriority(v string) Priority {
	switch Priority(v) {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return Priority(v)
	default:
		return PriorityNormal
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryPersonal:
		return "Persoonlijk"
	case CategoryWork:
		return "Werk"
	case CategoryGroceries:
		return "Boodschappen"
	case CategoryHousehold:
		return "Huishouden"
	case CategoryHealth:
		return "Gezondheid"
	default:
		return "Overig"
	}
}

func (c Category) Emoji() string {
	switch c {
	case CategoryPersonal:
		return "\U0001F3E0"
	case CategoryWork:
		return "\U0001F4BC"
	case CategoryGroceries:
		return "\U0001F6D2"
	case CategoryHousehold:
		return "\U0001F9F9"
	case CategoryHealth:
		return "\U0001F4AA"
	default:
		return "\U0001F4CC"
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Laag"
	case PriorityHigh:
		return "Hoog"
	default:
		return "Normaal"
	}
}

// DueAt combines the due date and due time into a concrete local instant.
// ok is false when the task has no date, or a time that does not parse.
func (t Task) DueAt() (time.Time, bool) {
	if t.Due == nil || t.DueTime == "" {
		return time.Time{}, false
	}
	clock, err := time.ParseInLocation("15:04", t.DueTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	d := *t.Due
	return time.Date(d.Year(), d.Month(), d.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local), true
}

// Normalize repairs enum fields after deserialization so downstream code can
// rely on the closed sets.
func (t Task) Normalize() Task {
	t.Category = ParseCategory(string(t.Category))
	t.Priority = ParsePriority(string(t.Priority))
	if t.Duration < 0 {
		t.Duration = 0
	}
	return t
}
