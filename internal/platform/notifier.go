package platform

import (
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
)

// NotificationSender is satisfied by fyne.App
type NotificationSender interface {
	SendNotification(*fyne.Notification)
}

// DesktopNotifier posts system notifications through the fyne app
type DesktopNotifier struct {
	app NotificationSender
}

// NewDesktopNotifier creates a notifier for app
func NewDesktopNotifier(app NotificationSender) *DesktopNotifier {
	return &DesktopNotifier{app: app}
}

// Permitted reports whether notifications can be posted. Fyne asks the OS
// for permission on first use, so this only checks that an app is present.
func (n *DesktopNotifier) Permitted() bool {
	return n.app != nil
}

// Notify posts a notification
func (n *DesktopNotifier) Notify(title, body string) error {
	if n.app == nil {
		return fmt.Errorf("no application to notify through")
	}
	n.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}

// TerminalNotifier writes notifications to a terminal, ringing the bell
type TerminalNotifier struct {
	w      io.Writer
	logger *slog.Logger
}

// NewTerminalNotifier creates a notifier writing to w
func NewTerminalNotifier(w io.Writer, logger *slog.Logger) *TerminalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &TerminalNotifier{w: w, logger: logger}
}

// Permitted is always true
func (n *TerminalNotifier) Permitted() bool {
	return true
}

// Notify writes "title: body" followed by a bell
func (n *TerminalNotifier) Notify(title, body string) error {
	n.logger.Debug("notification", "title", title, "body", body)
	if body == "" {
		_, err := fmt.Fprintf(n.w, "%s\a\n", title)
		return err
	}
	_, err := fmt.Fprintf(n.w, "%s %s\a\n", title, body)
	return err
}
