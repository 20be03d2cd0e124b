package config

import (
	"github.com/ytget/vidgrab/internal/model"
	"github.com/ytget/vidgrab/internal/store"
)

// Default values
const (
	DefaultAccent               = model.AccentRed
	DefaultNotificationsEnabled = true
	DefaultLanguage             = "en"
)

// Settings manages user preferences persisted in the local store
type Settings struct {
	store store.Store
}

// NewSettings creates a new settings manager
func NewSettings(s store.Store) *Settings {
	return &Settings{store: s}
}

// GetAccent returns the configured accent colour
func (s *Settings) GetAccent() model.AccentColor {
	accent := model.AccentColor(s.store.String(store.KeyAccent))
	if !accent.Valid() {
		return DefaultAccent
	}
	return accent
}

// SetAccent sets the accent colour; unknown values are ignored
func (s *Settings) SetAccent(accent model.AccentColor) {
	if !accent.Valid() {
		return
	}
	s.store.SetString(store.KeyAccent, string(accent))
}

// GetNotificationsEnabled returns whether completion notifications are wanted
func (s *Settings) GetNotificationsEnabled() bool {
	return s.store.BoolWithFallback(store.KeyNotifications, DefaultNotificationsEnabled)
}

// SetNotificationsEnabled toggles completion notifications
func (s *Settings) SetNotificationsEnabled(enabled bool) {
	s.store.SetBool(store.KeyNotifications, enabled)
}

// GetLanguage returns the UI language code
func (s *Settings) GetLanguage() string {
	if lang := s.store.String(store.KeyLanguage); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// SetLanguage sets the UI language code
func (s *Settings) SetLanguage(lang string) {
	s.store.SetString(store.KeyLanguage, lang)
}

// GetQualityOptions returns available quality options for video
func (s *Settings) GetQualityOptions() []model.Quality {
	return model.QualityOptions()
}

// GetAccentOptions returns available accent colours
func (s *Settings) GetAccentOptions() []model.AccentColor {
	return model.AccentOptions()
}
