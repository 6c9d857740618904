package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// ToastLevel is the severity of a notification
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (l ToastLevel) String() string {
	switch l {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Toast is one transient notification
type Toast struct {
	ID      int
	Level   ToastLevel
	Message string
}

func toastIcon(level ToastLevel) (string, lipgloss.Color) {
	switch level {
	case ToastSuccess:
		return "✓", styles.Green
	case ToastWarning:
		return "!", styles.Yellow
	case ToastError:
		return "✗", styles.Red
	default:
		return "i", styles.Blue
	}
}

// RenderToast renders a single notification box
func RenderToast(t Toast, width int) string {
	icon, color := toastIcon(t.Level)
	body := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon) + " " +
		lipgloss.NewStyle().Foreground(styles.Text).Render(t.Message)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(max(width-4, 10)).
		Render(body)
}

// RenderToasts stacks notifications, newest at the bottom
func RenderToasts(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	boxes := make([]string, len(toasts))
	for i, t := range toasts {
		boxes[i] = RenderToast(t, width)
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
