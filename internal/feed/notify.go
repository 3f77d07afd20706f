package feed

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"

	"github.com/MusikAnimal/event-streams/internal/models"
)

// NotifyMode selects the side-channel raised per accepted event.
type NotifyMode int

const (
	NotifyNone NotifyMode = iota
	NotifySound
	NotifySystem
)

func (m NotifyMode) String() string {
	switch m {
	case NotifySound:
		return "sound"
	case NotifySystem:
		return "system"
	}
	return "none"
}

// ParseNotifyMode maps a flag/env value to a NotifyMode. Empty means none.
func ParseNotifyMode(s string) (NotifyMode, error) {
	switch s {
	case "", "none":
		return NotifyNone, nil
	case "sound":
		return NotifySound, nil
	case "system":
		return NotifySystem, nil
	}
	return NotifyNone, fmt.Errorf("unknown notify mode %q", s)
}

// Notifier raises a sound or desktop notification for each accepted event.
// It is strictly fire-and-forget: it never blocks the pipeline, and every
// failure (no audio device, permission denied, no notification daemon) is
// swallowed.
type Notifier struct {
	mode   NotifyMode
	logger *log.Logger
}

// NewNotifier creates a notifier. A nil logger discards debug output.
func NewNotifier(mode NotifyMode, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Notifier{mode: mode, logger: logger}
}

// Notify raises the configured side channel for one record. It returns
// immediately; delivery happens on its own goroutine.
func (n *Notifier) Notify(rec models.DisplayRecord) {
	if n == nil || n.mode == NotifyNone {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				n.logger.Debug("notifier panic swallowed", "panic", r)
			}
		}()
		switch n.mode {
		case NotifySound:
			if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
				n.logger.Debug("beep failed", "error", err)
			}
		case NotifySystem:
			title := fmt.Sprintf("%s on %s", rec.Type, rec.Wiki)
			body := fmt.Sprintf("%s: %s", rec.User, rec.Title)
			if rec.EventURL != "" {
				body += "\n" + rec.EventURL
			}
			if err := beeep.Notify(title, body, ""); err != nil {
				n.logger.Debug("notification failed", "error", err)
			}
		}
	}()
}
