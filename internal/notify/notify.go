// Package notify defines the notification settings record and the surface
// the scheduler emits through.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Tags identify a logical notification so a surface can replace an earlier
// message with the same tag instead of stacking a duplicate.
const (
	TagDaily   = "daily-reminder"
	TagEnabled = "notifications-enabled"
)

func TaskTag(id int64) string      { return fmt.Sprintf("task-%d", id) }
func ImportantTag(id int64) string { return fmt.Sprintf("important-%d", id) }

var (
	ErrUnsupported      = errors.New("notifications are not supported on this system")
	ErrPermissionDenied = errors.New("notification permission denied")
)

type Permission int

const (
	PermissionGranted Permission = iota
	PermissionDenied
	PermissionUnsupported
)

// Message is a single notification payload.
type Message struct {
	Title string
	Body  string
	Tag   string
}

// Important reports whether the message belongs to the high-priority extra
// reminder class.
func (m Message) Important() bool {
	return strings.HasPrefix(m.Tag, "important-")
}

// Surface is the platform notification collaborator. Show must honor tag
// replacement where the platform allows it.
type Surface interface {
	RequestPermission(ctx context.Context) (Permission, error)
	Show(m Message) error
}

// Settings is the process-wide notification configuration, persisted as a
// single blob and mutated only through an explicit settings save.
type Settings struct {
	Enabled           bool   `json:"enabled"`
	DailyEnabled      bool   `json:"daily_enabled"`
	DailyTime         string `json:"daily_time"`
	TaskReminders     bool   `json:"task_reminders"`
	LeadMinutes       int    `json:"lead_minutes"`
	ExtraHighPriority bool   `json:"extra_high_priority"`
}

// DefaultSettings are applied when no settings blob has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Enabled:           false,
		DailyEnabled:      true,
		DailyTime:         "09:00",
		TaskReminders:     true,
		LeadMinutes:       15,
		ExtraHighPriority: true,
	}
}

// Normalize repairs a deserialized settings record so the scheduler can rely
// on sane values.
func (s Settings) Normalize() Settings {
	if s.LeadMinutes <= 0 {
		s.LeadMinutes = 15
	}
	if s.DailyTime == "" {
		s.DailyTime = "09:00"
	}
	return s
}

// Multi fans a message out to several surfaces. RequestPermission reports
// granted when at least one underlying surface grants.
type Multi []Surface

func (m Multi) RequestPermission(ctx context.Context) (Permission, error) {
	result := PermissionUnsupported
	for _, s := range m {
		p, err := s.RequestPermission(ctx)
		if err != nil {
			return p, err
		}
		switch p {
		case PermissionGranted:
			return PermissionGranted, nil
		case PermissionDenied:
			result = PermissionDenied
		}
	}
	return result, nil
}

func (m Multi) Show(msg Message) error {
	var firstErr error
	for _, s := range m {
		if err := s.Show(msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
