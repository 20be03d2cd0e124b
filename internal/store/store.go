// Package store defines the durable key/value storage used for history and
// user settings. Its method set is a subset of fyne.Preferences, so the
// desktop app passes app.Preferences() directly; the CLI uses SQLite.
package store

// Keys under which the app persists its state
const (
	KeyHistory       = "vidgrab_history"
	KeyAccent        = "vidgrab_accent"
	KeyNotifications = "vidgrab_notifications"
	KeyLanguage      = "vidgrab_language"
)

// Store is durable key/value persistence surviving process restarts.
// An empty string means the key is absent.
type Store interface {
	String(key string) string
	SetString(key string, value string)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
	RemoveValue(key string)
}
