package components

import "github.com/charmbracelet/lipgloss"

// AlertVariant selects the tone of an alert.
type AlertVariant int

const (
	AlertVariantInfo AlertVariant = iota
	AlertVariantSuccess
	AlertVariantWarning
	AlertVariantError
)

// Alert renders a one-line notification, used for form flashes and
// transient status messages.
type Alert struct {
	message string
	variant AlertVariant
	icon    string
	width   int
}

// NewAlert creates an info alert with the given message.
func NewAlert(message string) *Alert {
	return &Alert{message: message, variant: AlertVariantInfo, icon: "ℹ"}
}

// WithVariant sets the alert variant and its matching icon.
func (a *Alert) WithVariant(variant AlertVariant) *Alert {
	a.variant = variant
	switch variant {
	case AlertVariantSuccess:
		a.icon = "✓"
	case AlertVariantWarning:
		a.icon = "⚠"
	case AlertVariantError:
		a.icon = "✗"
	case AlertVariantInfo:
		a.icon = "ℹ"
	}
	return a
}

// WithWidth fixes the rendered width.
func (a *Alert) WithWidth(width int) *Alert {
	a.width = width
	return a
}

// View renders the alert with the given theme.
func (a *Alert) View(theme Theme) string {
	var color lipgloss.Color
	switch a.variant {
	case AlertVariantSuccess:
		color = theme.Success
	case AlertVariantWarning:
		color = theme.Warning
	case AlertVariantError:
		color = theme.Danger
	default:
		color = theme.Info
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	if a.width > 0 {
		style = style.Width(a.width)
	}
	return style.Render(a.icon + " " + a.message)
}

// SuccessAlert creates a success alert.
func SuccessAlert(message string) *Alert {
	return NewAlert(message).WithVariant(AlertVariantSuccess)
}

// ErrorAlert creates an error alert.
func ErrorAlert(message string) *Alert {
	return NewAlert(message).WithVariant(AlertVariantError)
}

// InfoAlert creates an info alert.
func InfoAlert(message string) *Alert {
	return NewAlert(message).WithVariant(AlertVariantInfo)
}
