package notify

import (
	"context"
	"os/exec"

	"github.com/charmbracelet/log"
)

const notifySendBin = "notify-send"

// DesktopSurface delivers notifications through the desktop's notify-send
// binary. Tag replacement uses the x-canonical-private-synchronous hint,
// which coalescing notification daemons honor.
type DesktopSurface struct {
	logger *log.Logger

	// lookPath and run are swappable for tests.
	lookPath func(string) (string, error)
	run      func(name string, args ...string) error
}

func NewDesktopSurface(logger *log.Logger) *DesktopSurface {
	return &DesktopSurface{
		logger:   logger,
		lookPath: exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// RequestPermission probes for the notify-send binary. There is no runtime
// permission prompt on the desktop, so a present binary means granted.
func (d *DesktopSurface) RequestPermission(_ context.Context) (Permission, error) {
	if _, err := d.lookPath(notifySendBin); err != nil {
		return PermissionUnsupported, nil
	}
	return PermissionGranted, nil
}

func (d *DesktopSurface) Show(m Message) error {
	urgency := "normal"
	if m.Important() {
		urgency = "critical"
	}
	args := []string{
		"-u", urgency,
		"-h", "string:x-canonical-private-synchronous:" + m.Tag,
		m.Title, m.Body,
	}
	if err := d.run(notifySendBin, args...); err != nil {
		d.logger.Warn("notify-send failed", "tag", m.Tag, "err", err)
		return err
	}
	d.logger.Debug("notification shown", "tag", m.Tag, "title", m.Title)
	return nil
}
