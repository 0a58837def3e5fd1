package storage

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taken/internal/notify"
	"taken/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "taken.db"), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadTasksAbsent(t *testing.T) {
	s := openTestStore(t)
	tasks, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSaveAndLoadTasks(t *testing.T) {
	s := openTestStore(t)
	due := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)
	in := []task.Task{
		{
			ID:        1741770000000,
			Text:      "tandarts bellen",
			Category:  task.CategoryHealth,
			Priority:  task.PriorityHigh,
			Due:       &due,
			DueTime:   "09:00",
			Duration:  30,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
		{
			ID:        1741770000001,
			Text:      "was ophangen",
			Category:  task.CategoryHousehold,
			Priority:  task.PriorityNormal,
			Done:      true,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		},
	}
	require.NoError(t, s.SaveTasks(in))

	got, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, in[0].ID, got[0].ID)
	assert.Equal(t, "tandarts bellen", got[0].Text)
	assert.Equal(t, "09:00", got[0].DueTime)
	assert.True(t, got[1].Done)
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveTasks([]task.Task{{ID: 1, Text: "a", CreatedAt: time.Now()}}))
	require.NoError(t, s.SaveTasks(nil))

	got, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMalformedTaskBlobTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.writeBlob(keyTasks, []byte(`{"this is": "not a task list"}`)))

	got, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.writeBlob(keyTasks, []byte(`not even json`)))
	got, err = s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadTasksNormalizesEnums(t *testing.T) {
	s := openTestStore(t)
	blob := `[{"id": 1, "text": "x", "category": "onbekend", "priority": "spoed",
		"completed": false, "created_at": "2025-03-12T10:00:00Z"}]`
	require.NoError(t, s.writeBlob(keyTasks, []byte(blob)))

	got, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, task.CategoryOther, got[0].Category)
	assert.Equal(t, task.PriorityNormal, got[0].Priority)
}

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	cfg, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, notify.DefaultSettings(), cfg)
}

func TestSettingsRoundtrip(t *testing.T) {
	s := openTestStore(t)
	in := notify.Settings{
		Enabled:           true,
		DailyEnabled:      true,
		DailyTime:         "08:30",
		TaskReminders:     true,
		LeadMinutes:       30,
		ExtraHighPriority: false,
	}
	require.NoError(t, s.SaveSettings(in))

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestMalformedSettingsBlobYieldsDefaults(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.writeBlob(keySettings, []byte(`garbage`)))

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, notify.DefaultSettings(), got)
}
