// Package app owns the application state: the in-memory task list, the
// notification settings, and the active filter. Every mutation persists the
// affected blob and re-arms the notification schedule.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taken/internal/notify"
	"taken/internal/task"
)

// ErrEmptyText signals an add with a blank description. The UI refocuses the
// input and nothing else happens.
var ErrEmptyText = errors.New("task text is empty")

// Repository is the slice of storage.Store the controller needs.
type Repository interface {
	LoadTasks() ([]task.Task, error)
	SaveTasks([]task.Task) error
	LoadSettings() (notify.Settings, error)
	SaveSettings(notify.Settings) error
}

// Rescheduler is the slice of scheduler.Scheduler the controller needs.
type Rescheduler interface {
	Reschedule(tasks []task.Task, cfg notify.Settings)
	SetGranted(granted bool)
}

// Input carries the raw add-form fields.
type Input struct {
	Text     string
	Category string
	Priority string
	Date     string // "2006-01-02", optional
	Time     string // "15:04", optional
	Duration int    // minutes, 0 means none
}

type App struct {
	repo    Repository
	sched   Rescheduler
	surface notify.Surface
	logger  *log.Logger
	now     func() time.Time

	mu       sync.Mutex
	tasks    []task.Task
	settings notify.Settings
	filter   task.Filter
	lastID   int64
}

// New loads both persisted blobs and returns a controller with the schedule
// not yet armed; call Reschedule once the surface is ready.
func New(repo Repository, sched Rescheduler, surface notify.Surface, logger *log.Logger) (*App, error) {
	tasks, err := repo.LoadTasks()
	if err != nil {
		return nil, err
	}
	settings, err := repo.LoadSettings()
	if err != nil {
		return nil, err
	}

	a := &App{
		repo:     repo,
		sched:    sched,
		surface:  surface,
		logger:   logger,
		now:      time.Now,
		tasks:    tasks,
		settings: settings,
		filter:   task.FilterAll,
	}
	for _, t := range tasks {
		if t.ID > a.lastID {
			a.lastID = t.ID
		}
	}
	return a, nil
}

// Add creates a task from the form input and prepends it (newest first).
// A blank description is refused with ErrEmptyText and leaves the store
// untouched.
func (a *App) Add(in Input) (task.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return task.Task{}, ErrEmptyText
	}

	a.mu.Lock()
	now := a.now()
	t := task.Task{
		ID:        a.nextIDLocked(now),
		Text:      text,
		Category:  task.ParseCategory(in.Category),
		Priority:  task.ParsePriority(in.Priority),
		DueTime:   strings.TrimSpace(in.Time),
		Duration:  max(in.Duration, 0),
		CreatedAt: now,
	}
	if d := strings.TrimSpace(in.Date); d != "" {
		if due, err := time.ParseInLocation("2006-01-02", d, time.Local); err == nil {
			t.Due = &due
		} else {
			a.logger.Warn("ignoring unparsable due date", "value", d)
		}
	}
	a.tasks = append([]task.Task{t}, a.tasks...)
	a.mu.Unlock()

	if err := a.persistTasks(); err != nil {
		return t, err
	}
	a.logger.Info("task added", "id", t.ID, "category", t.Category, "priority", t.Priority)
	a.Reschedule()
	return t, nil
}

// nextIDLocked derives a strictly increasing identifier from the clock,
// bumping past the last issued id when two creations land on the same
// millisecond.
func (a *App) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= a.lastID {
		id = a.lastID + 1
	}
	a.lastID = id
	return id
}

// Delete removes the task with the given id. Absent ids are a no-op with no
// persistence and no reschedule.
func (a *App) Delete(id int64) error {
	a.mu.Lock()
	idx := a.indexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return nil
	}
	a.tasks = append(a.tasks[:idx], a.tasks[idx+1:]...)
	a.mu.Unlock()

	if err := a.persistTasks(); err != nil {
		return err
	}
	a.logger.Info("task deleted", "id", id)
	a.Reschedule()
	return nil
}

// Toggle flips the completed flag. Absent ids are a no-op.
func (a *App) Toggle(id int64) error {
	a.mu.Lock()
	idx := a.indexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return nil
	}
	a.tasks[idx].Done = !a.tasks[idx].Done
	done := a.tasks[idx].Done
	a.mu.Unlock()

	if err := a.persistTasks(); err != nil {
		return err
	}
	a.logger.Info("task toggled", "id", id, "done", done)
	a.Reschedule()
	return nil
}

func (a *App) indexLocked(id int64) int {
	for i, t := range a.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns a snapshot of the full list, newest first.
func (a *App) Tasks() []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]task.Task, len(a.tasks))
	copy(out, a.tasks)
	return out
}

// Visible applies the active filter to a snapshot of the list.
func (a *App) Visible(now time.Time) []task.Task {
	a.mu.Lock()
	filter := a.filter
	a.mu.Unlock()
	return filter.Apply(a.Tasks(), now)
}

// Stats always counts the unfiltered list; the header reflects everything
// regardless of the active filter.
func (a *App) Stats() task.Stats {
	return task.ComputeStats(a.Tasks())
}

func (a *App) Filter() task.Filter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

func (a *App) SetFilter(f task.Filter) {
	a.mu.Lock()
	a.filter = f
	a.mu.Unlock()
}

func (a *App) Settings() notify.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// SaveSettings persists the settings record and re-arms the schedule.
func (a *App) SaveSettings(cfg notify.Settings) error {
	cfg = cfg.Normalize()
	a.mu.Lock()
	a.settings = cfg
	a.mu.Unlock()

	if err := a.repo.SaveSettings(cfg); err != nil {
		return err
	}
	a.logger.Info("settings saved", "enabled", cfg.Enabled)
	a.Reschedule()
	return nil
}

// EnableNotifications runs the explicit permission-gate action. Granted
// enables and persists the settings, arms the schedule, and fires a
// confirmation notification. Denied and unsupported return their sentinel
// errors with settings left disabled.
func (a *App) EnableNotifications(ctx context.Context) error {
	perm, err := a.surface.RequestPermission(ctx)
	if err != nil {
		return err
	}
	switch perm {
	case notify.PermissionUnsupported:
		return notify.ErrUnsupported
	case notify.PermissionDenied:
		a.sched.SetGranted(false)
		return notify.ErrPermissionDenied
	}

	a.sched.SetGranted(true)
	cfg := a.Settings()
	cfg.Enabled = true
	if err := a.SaveSettings(cfg); err != nil {
		return err
	}
	return a.surface.Show(notify.Message{
		Title: "Meldingen ingeschakeld",
		Body:  "Je ontvangt nu herinneringen voor je taken.",
		Tag:   notify.TagEnabled,
	})
}

// Reschedule re-arms the full timer set from the current state.
func (a *App) Reschedule() {
	a.mu.Lock()
	cfg := a.settings
	a.mu.Unlock()
	a.sched.Reschedule(a.Tasks(), cfg)
}

func (a *App) persistTasks() error {
	return a.repo.SaveTasks(a.Tasks())
}
