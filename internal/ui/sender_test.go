package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taken/internal/notify"
)

// The adapter must satisfy the surface's Sender contract; tea.Msg is a
// defined interface type, so *tea.Program cannot satisfy Send(any) on its
// own and has to go through teaSender.
var _ notify.Sender = teaSender{p: &tea.Program{}}
