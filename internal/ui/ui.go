// Package ui is the bubbletea front-end: the task list, the add and settings
// forms, and the notification banner area.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taken/internal/app"
	"taken/internal/config"
	"taken/internal/notify"
	"taken/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSettings
)

type permissionMsg struct {
	err error
}

type Model struct {
	app *app.App
	cfg config.Config
	now func() time.Time

	visible    []task.Task
	cursor     int
	mode       mode
	form       *form
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *task.Task

	// one banner per tag, newest last
	bannerTags []string
	banners    map[string]notify.Message
}

// teaSender adapts *tea.Program to notify.Sender. tea.Msg is a defined
// interface type, so the program's Send(tea.Msg) does not satisfy
// Send(any) directly.
type teaSender struct {
	p *tea.Program
}

func (s teaSender) Send(msg any) {
	s.p.Send(msg)
}

// Run starts the program and attaches the in-app notification surface once
// the program exists, so scheduler fires land in the banner area.
func Run(a *app.App, cfg config.Config, surface *notify.ProgramSurface) error {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		app:     a,
		cfg:     cfg,
		now:     time.Now,
		input:   ti,
		mode:    modeList,
		status:  "Druk 'a' voor een nieuwe taak, 's' voor meldingen.",
		banners: make(map[string]notify.Message),
	}
	a.SetFilter(task.ParseFilter(strings.ToLower(cfg.DefaultFilter)))
	m.refresh()

	program := tea.NewProgram(m)
	if surface != nil {
		surface.Attach(teaSender{p: program})
	}
	_, err := program.Run()
	return err
}

func (m *Model) refresh() {
	m.visible = m.app.Visible(m.now())
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateForm(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case notify.ShownMsg:
		return m.showBanner(msg.Message), nil
	case permissionMsg:
		return m.showPermissionResult(msg.err), nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.visible))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		m.form = newAddForm(m.now().Format("2006-01-02"))
		m.mode = modeAdd
		m.focusField()
		m.status = "Nieuwe taak: enter voor volgend veld, esc om te stoppen"
	case m.cfg.Keys.Settings:
		m.form = newSettingsForm(m.app.Settings())
		m.mode = modeSettings
		m.focusField()
		m.status = "Meldingen: enter voor volgend veld, esc om te stoppen"
	case m.cfg.Keys.Notifications:
		a := m.app
		m.status = "Toestemming vragen..."
		return m, func() tea.Msg {
			return permissionMsg{err: a.EnableNotifications(context.Background())}
		}
	case m.cfg.Keys.Toggle:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		if err := m.app.Toggle(t.ID); err != nil {
			m.status = fmt.Sprintf("wijzigen mislukt: %v", err)
			return m, nil
		}
		m.refresh()
		m.status = "Taak bijgewerkt"
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Verwijder \"%s\"? y/n", t.Text)
	case m.cfg.Keys.FilterAll:
		m.setFilter(task.FilterAll)
	case m.cfg.Keys.FilterToday:
		m.setFilter(task.FilterToday)
	case m.cfg.Keys.FilterWeek:
		m.setFilter(task.FilterWeek)
	case m.cfg.Keys.FilterImportant:
		m.setFilter(task.FilterImportant)
	}
	return m, nil
}

func (m *Model) setFilter(f task.Filter) {
	m.app.SetFilter(f)
	m.cursor = 0
	m.refresh()
	m.status = "Filter: " + f.Label()
}

func (m *Model) focusField() {
	fld := m.form.current()
	m.input.SetValue(fld.value)
	m.input.Placeholder = fld.hint
	m.input.Focus()
}

func (m Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.closeForm("Geannuleerd")
		return m, nil
	case "tab":
		m.form.current().value = m.input.Value()
		m.form.move(1)
		m.focusField()
		return m, nil
	case "shift+tab":
		m.form.current().value = m.input.Value()
		m.form.move(-1)
		m.focusField()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.current().value = m.input.Value()
		if !m.form.atLast() {
			m.form.move(1)
			m.focusField()
			return m, nil
		}
		if m.mode == modeAdd {
			return m.saveAdd()
		}
		return m.saveSettings()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveAdd() (tea.Model, tea.Cmd) {
	_, err := m.app.Add(m.form.input())
	if errors.Is(err, app.ErrEmptyText) {
		// Refuse silently: back to the description field.
		m.form.index = addFieldText
		m.focusField()
		m.status = "Omschrijving mag niet leeg zijn"
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("opslaan mislukt: %v", err)
		return m, nil
	}
	m.closeForm("Taak toegevoegd")
	m.cursor = 0
	m.refresh()
	return m, nil
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	cfg := m.form.settings(m.app.Settings())
	if err := m.app.SaveSettings(cfg); err != nil {
		m.status = fmt.Sprintf("opslaan mislukt: %v", err)
		return m, nil
	}
	m.closeForm("Meldingen opgeslagen")
	return m, nil
}

func (m *Model) closeForm(status string) {
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Verwijderen geannuleerd"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.confirmDel = false
			return m, nil
		}
		if err := m.app.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("verwijderen mislukt: %v", err)
		} else {
			m.status = "Taak verwijderd"
		}
		m.confirmDel = false
		m.pendingDel = nil
		m.refresh()
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) showBanner(msg notify.Message) Model {
	if _, seen := m.banners[msg.Tag]; !seen {
		m.bannerTags = append(m.bannerTags, msg.Tag)
	}
	// Same tag replaces; the map write below covers both cases.
	banners := make(map[string]notify.Message, len(m.banners)+1)
	for k, v := range m.banners {
		banners[k] = v
	}
	banners[msg.Tag] = msg
	m.banners = banners
	if len(m.bannerTags) > 3 {
		drop := m.bannerTags[0]
		m.bannerTags = append([]string{}, m.bannerTags[1:]...)
		delete(m.banners, drop)
	}
	return m
}

func (m Model) showPermissionResult(err error) Model {
	switch {
	case errors.Is(err, notify.ErrUnsupported):
		m.status = "Meldingen worden niet ondersteund op dit systeem"
	case errors.Is(err, notify.ErrPermissionDenied):
		m.status = "Toestemming geweigerd, meldingen blijven uit"
	case err != nil:
		m.status = fmt.Sprintf("meldingen inschakelen mislukt: %v", err)
	default:
		m.status = "Meldingen ingeschakeld"
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Mijn Taken"))
	b.WriteString("  ")
	s := m.app.Stats()
	b.WriteString(statsStyle.Render(fmt.Sprintf("%d totaal • %d klaar • %d open",
		s.Total, s.Completed, s.Remaining)))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	for _, tag := range m.bannerTags {
		msg := m.banners[tag]
		style := bannerStyle
		if msg.Important() {
			style = bannerImportantStyle
		}
		b.WriteString(style.Render(msg.Title + "\n" + msg.Body))
		b.WriteString("\n")
	}

	if m.mode != modeList {
		b.WriteString(m.form.title)
		b.WriteString("\n\n")
		b.WriteString(m.form.renderBox())
		b.WriteString("\n")
		b.WriteString("Veld: " + m.form.current().label)
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.status)
		return b.String()
	}

	if len(m.visible) == 0 {
		b.WriteString("Geen taken. Druk 'a' om er een toe te voegen.")
		b.WriteString("\n")
	} else {
		for i, t := range m.visible {
			cursor := " "
			if m.cursor == i {
				cursor = ">"
			}
			b.WriteString(cursor + " " + renderTaskLine(t, m.now()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderFilterBar() string {
	active := m.app.Filter()
	parts := make([]string, 0, 4)
	for _, f := range []task.Filter{task.FilterAll, task.FilterToday, task.FilterWeek, task.FilterImportant} {
		label := f.Label()
		if f == active {
			label = filterActiveStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " | ")
}

// renderTaskLine formats one list row. Task text is written as plain text,
// never interpreted as markup.
func renderTaskLine(t task.Task, now time.Time) string {
	checkbox := "[ ]"
	if t.Done {
		checkbox = "[x]"
	}

	text := t.Text
	switch {
	case t.Done:
		text = doneStyle.Render(text)
	case t.Priority == task.PriorityHigh:
		text = priorityHighStyle.Render(text)
	case t.Priority == task.PriorityLow:
		text = priorityLowStyle.Render(text)
	}

	chips := []string{t.Category.Emoji() + " " + t.Category.Label(), t.Priority.Label()}
	if t.Due != nil {
		chips = append(chips, task.FormatDate(*t.Due, now))
	}
	if t.DueTime != "" {
		chips = append(chips, t.DueTime)
	}
	if d := task.FormatDuration(t.Duration); d != "" {
		chips = append(chips, d)
	}

	return fmt.Sprintf("%s %s [%s]", checkbox, text, strings.Join(chips, " | "))
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s bewegen • %s nieuw • %s afvinken • %s verwijderen • %s meldingen • %s toestemming • %s-%s filters • %s stoppen",
		k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.Settings, k.Notifications, k.FilterAll, k.FilterImportant, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
