package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taken/internal/notify"
)

func TestAddFormInput(t *testing.T) {
	f := newAddForm("2025-03-12")
	f.fields[addFieldText].value = "  boodschappen doen  "
	f.fields[addFieldCategory].value = "Boodschappen"
	f.fields[addFieldPriority].value = "HOOG"
	f.fields[addFieldTime].value = "17:30"
	f.fields[addFieldDuration].value = "45"

	in := f.input()
	assert.Equal(t, "  boodschappen doen  ", in.Text) // trimming is the controller's job
	assert.Equal(t, "boodschappen", in.Category)
	assert.Equal(t, "hoog", in.Priority)
	assert.Equal(t, "2025-03-12", in.Date)
	assert.Equal(t, "17:30", in.Time)
	assert.Equal(t, 45, in.Duration)
}

func TestAddFormBadDurationMeansNone(t *testing.T) {
	f := newAddForm("")
	f.fields[addFieldText].value = "x"
	f.fields[addFieldDuration].value = "een uurtje"
	assert.Zero(t, f.input().Duration)
}

func TestSettingsFormRoundtrip(t *testing.T) {
	cfg := notify.Settings{
		Enabled:           true,
		DailyEnabled:      false,
		DailyTime:         "08:15",
		TaskReminders:     true,
		LeadMinutes:       20,
		ExtraHighPriority: true,
	}
	f := newSettingsForm(cfg)
	got := f.settings(notify.DefaultSettings())
	assert.Equal(t, cfg, got)
}

func TestSettingsFormKeepsLeadOnBadInput(t *testing.T) {
	prev := notify.DefaultSettings()
	prev.LeadMinutes = 25

	f := newSettingsForm(prev)
	f.fields[settingsFieldLead].value = "vijftien"
	assert.Equal(t, 25, f.settings(prev).LeadMinutes)

	f.fields[settingsFieldLead].value = "-5"
	assert.Equal(t, 25, f.settings(prev).LeadMinutes)
}

func TestFormNavigationWraps(t *testing.T) {
	f := newAddForm("")
	require.Equal(t, 0, f.index)
	f.move(-1)
	assert.Equal(t, len(f.fields)-1, f.index)
	assert.True(t, f.atLast())
	f.move(1)
	assert.Equal(t, 0, f.index)
}

func TestParseYN(t *testing.T) {
	for _, v := range []string{"y", "ja", "J", "1", "true", " yes "} {
		assert.True(t, parseYN(v), v)
	}
	for _, v := range []string{"", "n", "nee", "0", "misschien"} {
		assert.False(t, parseYN(v), v)
	}
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(0, 0))
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 2, clampCursor(5, 3))
	assert.Equal(t, 1, clampCursor(1, 3))
}

func TestShowBannerReplacesSameTag(t *testing.T) {
	m := Model{banners: make(map[string]notify.Message)}

	m = m.showBanner(notify.Message{Tag: notify.TagDaily, Body: "eerste"})
	m = m.showBanner(notify.Message{Tag: notify.TagDaily, Body: "tweede"})
	require.Len(t, m.bannerTags, 1)
	assert.Equal(t, "tweede", m.banners[notify.TagDaily].Body)

	m = m.showBanner(notify.Message{Tag: notify.TaskTag(1), Body: "taak"})
	assert.Len(t, m.bannerTags, 2)
}

func TestShowBannerCapsAtThree(t *testing.T) {
	m := Model{banners: make(map[string]notify.Message)}
	for i := int64(1); i <= 4; i++ {
		m = m.showBanner(notify.Message{Tag: notify.TaskTag(i)})
	}
	assert.Len(t, m.bannerTags, 3)
	assert.NotContains(t, m.banners, notify.TaskTag(1))
	assert.Contains(t, m.banners, notify.TaskTag(4))
}
