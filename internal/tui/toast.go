package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/tui/components"
)

// ToastDuration is how long a toast stays on screen
const ToastDuration = 5 * time.Second

// maxToasts bounds the visible stack; older toasts drop first
const maxToasts = 4

// addToast queues a notification and schedules its expiry
func (m Model) addToast(level components.ToastLevel, message string) (Model, tea.Cmd) {
	m.nextToastID++
	t := components.Toast{ID: m.nextToastID, Level: level, Message: message}

	toasts := append([]components.Toast(nil), m.toasts...)
	toasts = append(toasts, t)
	if len(toasts) > maxToasts {
		toasts = toasts[len(toasts)-maxToasts:]
	}
	m.toasts = toasts

	m.logger.Debug("toast", "level", level.String(), "message", message)
	return m, ToastExpireCmd(t.ID, ToastDuration)
}

// toast is addToast for handlers returning tea.Model
func (m Model) toast(level components.ToastLevel, message string) (tea.Model, tea.Cmd) {
	return m.addToast(level, message)
}

// removeToast drops a toast by id; unknown ids are ignored
func (m Model) removeToast(id int) Model {
	kept := make([]components.Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	return m
}

// dismissNewest closes the most recent toast
func (m Model) dismissNewest() Model {
	if len(m.toasts) == 0 {
		return m
	}
	return m.removeToast(m.toasts[len(m.toasts)-1].ID)
}
