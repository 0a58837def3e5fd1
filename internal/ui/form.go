package ui

import (
	"fmt"
	"strconv"
	"strings"

	"taken/internal/app"
	"taken/internal/notify"
	"taken/internal/task"
)

// formField is one line of a multi-field editor.
type formField struct {
	label string
	hint  string
	value string
}

// form drives both the add-task and the notification-settings editors:
// a fixed field list, one focused index, and tab/enter navigation.
type form struct {
	title  string
	fields []formField
	index  int
}

func (f *form) current() *formField {
	return &f.fields[f.index]
}

func (f *form) move(delta int) {
	f.index = wrapIndex(f.index+delta, len(f.fields))
}

func (f *form) atLast() bool {
	return f.index >= len(f.fields)-1
}

func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i, fld := range f.fields {
		out[i] = fld.value
	}
	return out
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

const (
	addFieldText = iota
	addFieldCategory
	addFieldPriority
	addFieldDate
	addFieldTime
	addFieldDuration
)

func newAddForm(today string) *form {
	return &form{
		title: "Nieuwe taak",
		fields: []formField{
			{label: "Omschrijving", hint: "wat moet er gebeuren?"},
			{label: "Categorie", hint: "persoonlijk/werk/boodschappen/huishouden/gezondheid/overig", value: string(task.CategoryPersonal)},
			{label: "Prioriteit", hint: "laag/normaal/hoog", value: string(task.PriorityNormal)},
			{label: "Datum", hint: "YYYY-MM-DD", value: today},
			{label: "Tijd", hint: "HH:MM, leeg voor geen"},
			{label: "Duur", hint: "minuten, leeg voor geen"},
		},
	}
}

// input converts the add form into the controller's input record. A
// non-numeric duration is treated as none.
func (f *form) input() app.Input {
	v := f.values()
	duration := 0
	if d := strings.TrimSpace(v[addFieldDuration]); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			duration = n
		}
	}
	return app.Input{
		Text:     v[addFieldText],
		Category: strings.ToLower(strings.TrimSpace(v[addFieldCategory])),
		Priority: strings.ToLower(strings.TrimSpace(v[addFieldPriority])),
		Date:     strings.TrimSpace(v[addFieldDate]),
		Time:     strings.TrimSpace(v[addFieldTime]),
		Duration: duration,
	}
}

const (
	settingsFieldEnabled = iota
	settingsFieldDaily
	settingsFieldDailyTime
	settingsFieldTaskReminders
	settingsFieldLead
	settingsFieldExtra
)

func newSettingsForm(cfg notify.Settings) *form {
	return &form{
		title: "Meldingen",
		fields: []formField{
			{label: "Meldingen aan", hint: "y/n", value: ynString(cfg.Enabled)},
			{label: "Dagelijks overzicht", hint: "y/n", value: ynString(cfg.DailyEnabled)},
			{label: "Tijd overzicht", hint: "HH:MM", value: cfg.DailyTime},
			{label: "Taakherinneringen", hint: "y/n", value: ynString(cfg.TaskReminders)},
			{label: "Minuten vooraf", hint: "bijv. 15", value: strconv.Itoa(cfg.LeadMinutes)},
			{label: "Extra bij hoog", hint: "y/n", value: ynString(cfg.ExtraHighPriority)},
		},
	}
}

// settings converts the settings form back into a record; unparsable lead
// minutes keep their previous value.
func (f *form) settings(prev notify.Settings) notify.Settings {
	v := f.values()
	cfg := prev
	cfg.Enabled = parseYN(v[settingsFieldEnabled])
	cfg.DailyEnabled = parseYN(v[settingsFieldDaily])
	cfg.DailyTime = strings.TrimSpace(v[settingsFieldDailyTime])
	cfg.TaskReminders = parseYN(v[settingsFieldTaskReminders])
	if n, err := strconv.Atoi(strings.TrimSpace(v[settingsFieldLead])); err == nil && n > 0 {
		cfg.LeadMinutes = n
	}
	cfg.ExtraHighPriority = parseYN(v[settingsFieldExtra])
	return cfg.Normalize()
}

func (f *form) renderBox() string {
	var b strings.Builder
	for i, fld := range f.fields {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := fld.value
		if strings.TrimSpace(val) == "" {
			val = "(leeg)"
		}
		b.WriteString(fmt.Sprintf("%s %-20s : %s\n", prefix, fld.label, val))
	}
	return b.String()
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "j" || v == "ja" || v == "true" || v == "1"
}

func ynString(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
