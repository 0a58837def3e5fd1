package notify

import (
	"context"
	"sync"
)

// Sender is the slice of *tea.Program the in-app surface needs.
type Sender interface {
	Send(msg any)
}

// ProgramSurface delivers notifications into the running bubbletea program
// as ShownMsg values. It buffers messages sent before the program is
// attached (the scheduler may fire during startup).
type ProgramSurface struct {
	mu      sync.Mutex
	sender  Sender
	pending []Message
}

// ShownMsg is the tea.Msg the UI receives for every emitted notification.
type ShownMsg struct {
	Message Message
}

func NewProgramSurface() *ProgramSurface {
	return &ProgramSurface{}
}

// Attach binds the running program and flushes anything buffered.
func (p *ProgramSurface) Attach(s Sender) {
	p.mu.Lock()
	p.sender = s
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, m := range pending {
		s.Send(ShownMsg{Message: m})
	}
}

// RequestPermission always grants: the app owns its own screen.
func (p *ProgramSurface) RequestPermission(_ context.Context) (Permission, error) {
	return PermissionGranted, nil
}

func (p *ProgramSurface) Show(m Message) error {
	p.mu.Lock()
	s := p.sender
	if s == nil {
		p.pending = append(p.pending, m)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	s.Send(ShownMsg{Message: m})
	return nil
}
