// Package scheduler arms one-shot timers for the daily summary and the
// per-task reminder notifications, and re-arms the whole set whenever the
// task list or the notification settings change.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taken/internal/notify"
	"taken/internal/task"
)

// Handle is a cancellable armed timer.
type Handle interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) Handle

func afterFunc(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, fn)
}

// Scheduler owns a tag-keyed table of armed timers. Every reschedule stops
// the previous handles before arming new ones, so a task edit or delete can
// never leave a stale timer behind. Fire callbacks re-check task state
// anyway before emitting.
type Scheduler struct {
	surface  notify.Surface
	snapshot func() []task.Task
	logger   *log.Logger

	now      func() time.Time
	newTimer timerFactory

	mu       sync.Mutex
	handles  map[string]Handle
	settings notify.Settings
	granted  bool
}

// New creates a stopped scheduler. snapshot must return the current task
// list; it is consulted again at fire time.
func New(surface notify.Surface, snapshot func() []task.Task, logger *log.Logger) *Scheduler {
	return &Scheduler{
		surface:  surface,
		snapshot: snapshot,
		logger:   logger,
		now:      time.Now,
		newTimer: afterFunc,
		handles:  make(map[string]Handle),
	}
}

// SetGranted opens or closes the permission gate. While the gate is closed
// every scheduling operation is a no-op.
func (s *Scheduler) SetGranted(granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted = granted
	if !granted {
		s.cancelAllLocked()
	}
}

// Reschedule tears down every armed timer and recomputes the full set from
// the given tasks and settings.
func (s *Scheduler) Reschedule(tasks []task.Task, cfg notify.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked()
	s.settings = cfg.Normalize()

	if !s.granted || !s.settings.Enabled {
		s.logger.Debug("scheduler idle", "granted", s.granted, "enabled", s.settings.Enabled)
		return
	}

	now := s.now()
	if s.settings.DailyEnabled {
		s.armDailyLocked(now)
	}
	if s.settings.TaskReminders {
		for _, t := range tasks {
			s.armTaskLocked(t, now)
		}
	}
}

// Stop cancels everything. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAllLocked()
}

func (s *Scheduler) cancelAllLocked() {
	for tag, h := range s.handles {
		h.Stop()
		delete(s.handles, tag)
	}
}

func (s *Scheduler) armLocked(tag string, delay time.Duration, fire func()) {
	if h, ok := s.handles[tag]; ok {
		h.Stop()
	}
	var h Handle
	h = s.newTimer(delay, func() {
		fire()
		// Drop the spent handle, but only if it is still the one in the
		// table: a reschedule that interleaved with this fire has already
		// replaced it, and that newer handle must stay tracked.
		s.mu.Lock()
		if s.handles[tag] == h {
			delete(s.handles, tag)
		}
		s.mu.Unlock()
	})
	s.handles[tag] = h
	s.logger.Debug("timer armed", "tag", tag, "delay", delay)
}

func (s *Scheduler) armDailyLocked(now time.Time) {
	target, err := nextDaily(now, s.settings.DailyTime)
	if err != nil {
		s.logger.Warn("invalid daily reminder time", "value", s.settings.DailyTime, "err", err)
		return
	}
	s.armLocked(notify.TagDaily, target.Sub(now), s.fireDaily)
}

func (s *Scheduler) armTaskLocked(t task.Task, now time.Time) {
	if t.Done {
		return
	}
	due, ok := t.DueAt()
	if !ok {
		return
	}

	lead := time.Duration(s.settings.LeadMinutes) * time.Minute
	if target := due.Add(-lead); target.After(now) {
		id := t.ID
		s.armLocked(notify.TaskTag(id), target.Sub(now), func() { s.fireTask(id) })
	}

	if t.Priority == task.PriorityHigh && s.settings.ExtraHighPriority {
		if target := due.Add(-time.Hour); target.After(now) {
			id := t.ID
			s.armLocked(notify.ImportantTag(id), target.Sub(now), func() { s.fireImportant(id) })
		}
	}
}

// fireDaily composes the day summary, emits it, and re-arms itself for the
// next day. Recurrence is a chain of one-shot timers, each link armed from
// the previous link's callback.
func (s *Scheduler) fireDaily() {
	now := s.now()
	msg := DailyMessage(s.snapshot(), now)
	s.emit(msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.granted && s.settings.Enabled && s.settings.DailyEnabled {
		s.armDailyLocked(now)
	}
}

func (s *Scheduler) fireTask(id int64) {
	t, ok := s.lookup(id)
	if !ok || t.Done {
		s.logger.Debug("task reminder skipped", "id", id, "found", ok)
		return
	}
	s.mu.Lock()
	lead := s.settings.LeadMinutes
	s.mu.Unlock()
	s.emit(notify.Message{
		Title: "Herinnering",
		Body:  fmt.Sprintf("%s, over %d minuten (%s)", t.Text, lead, t.DueTime),
		Tag:   notify.TaskTag(id),
	})
}

func (s *Scheduler) fireImportant(id int64) {
	t, ok := s.lookup(id)
	if !ok || t.Done {
		s.logger.Debug("important reminder skipped", "id", id, "found", ok)
		return
	}
	s.emit(notify.Message{
		Title: "Belangrijke taak!",
		Body:  fmt.Sprintf("%s om %s", t.Text, t.DueTime),
		Tag:   notify.ImportantTag(id),
	})
}

func (s *Scheduler) lookup(id int64) (task.Task, bool) {
	for _, t := range s.snapshot() {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (s *Scheduler) emit(m notify.Message) {
	if err := s.surface.Show(m); err != nil {
		s.logger.Warn("notification failed", "tag", m.Tag, "err", err)
		return
	}
	s.logger.Info("notification sent", "tag", m.Tag)
}

// armed returns the tags currently holding a live handle.
func (s *Scheduler) armed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, 0, len(s.handles))
	for tag := range s.handles {
		tags = append(tags, tag)
	}
	return tags
}

// nextDaily parses an "HH:MM" wall-clock time and returns today's matching
// instant, rolled forward to tomorrow when that instant is not in the
// future.
func nextDaily(now time.Time, hhmm string) (time.Time, error) {
	clock, err := time.ParseInLocation("15:04", hhmm, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	target := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

// DailyMessage builds the daily summary for the open tasks due on the day of
// now: a count plus the high-priority count in parentheses, or the empty-day
// text when nothing is due.
func DailyMessage(tasks []task.Task, now time.Time) notify.Message {
	open, high := 0, 0
	for _, t := range tasks {
		if t.Done || t.Due == nil || !task.IsToday(*t.Due, now) {
			continue
		}
		open++
		if t.Priority == task.PriorityHigh {
			high++
		}
	}

	msg := notify.Message{Title: "Taken voor vandaag", Tag: notify.TagDaily}
	switch {
	case open == 0:
		msg.Body = "Geen taken gepland voor vandaag. Geniet van je dag!"
	case high > 0:
		msg.Body = fmt.Sprintf("Je hebt vandaag %s gepland (%d belangrijk)", taskWord(open), high)
	default:
		msg.Body = fmt.Sprintf("Je hebt vandaag %s gepland", taskWord(open))
	}
	return msg
}

func taskWord(n int) string {
	if n == 1 {
		return "1 taak"
	}
	return fmt.Sprintf("%d taken", n)
}
