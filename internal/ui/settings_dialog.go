package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/vidgrab/internal/config"
	"github.com/ytget/vidgrab/internal/model"
)

// SettingsCallbacks lets the window react to changes made in the dialog
type SettingsCallbacks struct {
	OnAccentChanged func(model.AccentColor)
	OnClearHistory  func()
}

// SettingsDialog represents the settings drawer. Changes apply immediately.
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	callbacks    SettingsCallbacks
	dialog       dialog.Dialog

	// UI components
	accentSelect       *widget.Select
	notificationsCheck *widget.Check
	clearHistoryBtn    *widget.Button
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, callbacks SettingsCallbacks) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		callbacks:    callbacks,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, callbacks SettingsCallbacks) {
	NewSettingsDialog(settings, localization, window, callbacks).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	accentOptions := []string{}
	for _, accent := range sd.settings.GetAccentOptions() {
		accentOptions = append(accentOptions, string(accent))
	}
	sd.accentSelect = widget.NewSelect(accentOptions, nil)

	sd.notificationsCheck = widget.NewCheck(sd.localization.GetText(KeyNotifications), nil)

	sd.clearHistoryBtn = widget.NewButton(sd.localization.GetText(KeyClearHistory), func() {
		if sd.callbacks.OnClearHistory != nil {
			sd.callbacks.OnClearHistory()
		}
	})
	sd.clearHistoryBtn.Importance = widget.DangerImportance

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyAccent)),
		sd.accentSelect,
		widget.NewSeparator(),
		sd.notificationsCheck,
		widget.NewSeparator(),
		sd.clearHistoryBtn,
	)

	sd.dialog = dialog.NewCustom(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeyClose),
		form,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(320, 280))
}

// loadCurrentSettings loads current settings into the UI, then wires the
// change handlers so loading does not write back
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.accentSelect.OnChanged = nil
	sd.notificationsCheck.OnChanged = nil

	sd.accentSelect.SetSelected(string(sd.settings.GetAccent()))
	sd.notificationsCheck.SetChecked(sd.settings.GetNotificationsEnabled())

	sd.accentSelect.OnChanged = sd.onAccentChanged
	sd.notificationsCheck.OnChanged = sd.settings.SetNotificationsEnabled
}

func (sd *SettingsDialog) onAccentChanged(selected string) {
	accent := model.AccentColor(selected)
	if !accent.Valid() {
		return
	}
	sd.settings.SetAccent(accent)
	if sd.callbacks.OnAccentChanged != nil {
		sd.callbacks.OnAccentChanged(accent)
	}
}
