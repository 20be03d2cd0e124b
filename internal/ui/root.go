package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/vidgrab/internal/config"
	"github.com/ytget/vidgrab/internal/download"
	"github.com/ytget/vidgrab/internal/model"
)

// ConnectionChecker is the part of the connection monitor the UI needs
type ConnectionChecker interface {
	SetUpdateCallback(func(model.ConnectionState))
	State() model.ConnectionState
	Check(ctx context.Context) model.ConnectionState
}

// HistoryStore lists and clears completed downloads
type HistoryStore interface {
	Entries() []model.HistoryEntry
	Clear()
}

// Deps are the services the window drives
type Deps struct {
	Manager  download.Lifecycle
	Monitor  ConnectionChecker
	History  HistoryStore
	Settings *config.Settings
	Logger   *slog.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	app          fyne.App
	manager      download.Lifecycle
	monitor      ConnectionChecker
	history      HistoryStore
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	logger       *slog.Logger

	urlEntry      *widget.Entry
	pasteBtn      *widget.Button
	formatRadio   *widget.RadioGroup
	qualitySelect *widget.Select
	qualityRow    *fyne.Container
	downloadBtn   *widget.Button

	statusPanel   *fyne.Container
	statusTitle   *widget.Label
	statusMessage *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
	saveBtn       *widget.Button

	badgeDot   *canvas.Circle
	badgeLabel *widget.Label

	historyTitle   *widget.Label
	historyList    *widget.List
	historyEmpty   *widget.Label
	historyEntries []model.HistoryEntry

	format    model.Format
	quality   model.Quality
	lastState model.TaskState
}

// NewRootUI creates and initializes the main UI. ctx bounds submissions
// started from the window.
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, deps Deps) *RootUI {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	localization := NewLocalization()
	localization.SetLanguage(deps.Settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		app:          app,
		manager:      deps.Manager,
		monitor:      deps.Monitor,
		history:      deps.History,
		settings:     deps.Settings,
		localization: localization,
		mobile:       NewMobileUI(),
		logger:       logger,
		format:       model.FormatVideo,
		quality:      model.QualityBest,
		lastState:    model.TaskStateIdle,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()

	ui.manager.SetUpdateCallback(ui.onTaskUpdate)
	ui.monitor.SetUpdateCallback(ui.onConnectionUpdate)
	ui.renderTask(ui.manager.Snapshot())
	ui.renderConnection(ui.monitor.State())
	ui.reloadHistory()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// URL row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.pasteBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyPaste), theme.ContentPasteIcon(), ui.onPaste)
	ui.pasteBtn.Importance = widget.LowImportance
	urlRow := container.NewBorder(nil, nil, nil, ui.pasteBtn, ui.urlEntry)

	// Format and quality
	ui.formatRadio = widget.NewRadioGroup(ui.formatOptions(), ui.onFormatChanged)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true

	qualityLabels := make([]string, 0, len(ui.settings.GetQualityOptions()))
	for _, q := range ui.settings.GetQualityOptions() {
		qualityLabels = append(qualityLabels, q.Label())
	}
	ui.qualitySelect = widget.NewSelect(qualityLabels, ui.onQualityChanged)
	ui.qualitySelect.SetSelected(model.QualityBest.Label())
	ui.qualityRow = container.NewBorder(nil, nil, widget.NewLabel(ui.localization.GetText(KeyQuality)), nil, ui.qualitySelect)
	// Selecting fires onFormatChanged, which toggles qualityRow
	ui.formatRadio.SetSelected(ui.localization.GetText(KeyVideo))

	ui.downloadBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyDownload), theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	optionsRow := ui.mobile.CreateAdaptiveContainer(2, ui.formatRadio, ui.qualityRow)

	// Status panel (hidden while idle)
	ui.statusTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.progressLabel = widget.NewLabel("")
	ui.statusMessage = widget.NewLabel("")
	ui.statusMessage.Wrapping = fyne.TextWrapWord
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.saveBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeySaveFile), theme.DocumentSaveIcon(), ui.onSaveFile)
	ui.saveBtn.Hide()
	ui.statusPanel = container.NewVBox(
		container.NewBorder(nil, nil, nil, ui.progressLabel, ui.statusTitle),
		ui.progressBar,
		ui.statusMessage,
		ui.saveBtn,
	)
	ui.statusPanel.Hide()

	// Connection badge
	ui.badgeDot = canvas.NewCircle(BadgeChecking)
	ui.badgeLabel = widget.NewLabel("")
	badgeBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), ui.onRetryConnection)
	badgeBtn.Importance = widget.LowImportance
	badge := container.NewHBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(BadgeDotSize, BadgeDotSize), ui.badgeDot)),
		ui.badgeLabel,
		badgeBtn,
	)

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	header := container.NewBorder(nil, nil, badge, settingsBtn)

	// History
	ui.historyTitle = widget.NewLabelWithStyle(ui.localization.GetText(KeyHistory), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.historyEmpty = widget.NewLabel(ui.localization.GetText(KeyNoHistory))
	ui.historyList = widget.NewList(
		func() int { return len(ui.historyEntries) },
		ui.createHistoryItem,
		ui.updateHistoryItem,
	)
	ui.historyList.OnSelected = ui.onHistorySelected

	top := container.NewVBox(
		header,
		urlRow,
		optionsRow,
		ui.mobile.CreateTouchTarget(ui.downloadBtn),
		ui.statusPanel,
		widget.NewSeparator(),
		ui.historyTitle,
		ui.historyEmpty,
	)

	content := container.NewBorder(top, nil, nil, nil, ui.historyList)
	ui.window.SetContent(container.NewPadded(content))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	clearItem := fyne.NewMenuItem(ui.localization.GetText(KeyClearHistory), ui.onClearHistory)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, clearItem),
		languageMenu,
	))
}

func (ui *RootUI) formatOptions() []string {
	return []string{ui.localization.GetText(KeyVideo), ui.localization.GetText(KeyAudio)}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.pasteBtn.SetText(ui.localization.GetText(KeyPaste))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.saveBtn.SetText(ui.localization.GetText(KeySaveFile))
	ui.historyTitle.SetText(ui.localization.GetText(KeyHistory))
	ui.historyEmpty.SetText(ui.localization.GetText(KeyNoHistory))

	format := ui.format
	ui.formatRadio.Options = ui.formatOptions()
	ui.formatRadio.SetSelected(ui.formatLabel(format))

	ui.renderTask(ui.manager.Snapshot())
	ui.renderConnection(ui.monitor.State())
}

func (ui *RootUI) formatLabel(format model.Format) string {
	if format == model.FormatAudio {
		return ui.localization.GetText(KeyAudio)
	}
	return ui.localization.GetText(KeyVideo)
}

func (ui *RootUI) onFormatChanged(selected string) {
	if selected == ui.localization.GetText(KeyAudio) {
		ui.format = model.FormatAudio
		ui.qualityRow.Hide()
		return
	}
	ui.format = model.FormatVideo
	ui.qualityRow.Show()
}

func (ui *RootUI) onQualityChanged(selected string) {
	for _, q := range ui.settings.GetQualityOptions() {
		if q.Label() == selected {
			ui.quality = q
			return
		}
	}
}

// onURLChanged clears a finished task as soon as the user edits the link
func (ui *RootUI) onURLChanged(string) {
	if ui.manager.Snapshot().State.IsTerminal() {
		ui.manager.Clear()
	}
}

func (ui *RootUI) onPaste() {
	text := strings.TrimSpace(ui.window.Clipboard().Content())
	if text == "" {
		return
	}
	ui.urlEntry.SetText(text)
	ui.window.Canvas().Focus(ui.urlEntry)
}

// onDownloadClick hands the link to the manager off the UI goroutine
func (ui *RootUI) onDownloadClick() {
	link := ui.urlEntry.Text
	format, quality := ui.format, ui.quality

	go func() {
		err := ui.manager.Submit(ui.ctx, link, format, quality)
		switch {
		case err == nil, errors.Is(err, download.ErrEmptyURL):
		case errors.Is(err, download.ErrClosed):
			ui.logger.Debug("submit after close ignored")
		default:
			// The manager already surfaced the failure as task state.
			ui.logger.Info("submit failed", "err", err)
		}
	}()
}

func (ui *RootUI) onSaveFile() {
	if err := ui.manager.RetrySave(); err != nil {
		if errors.Is(err, download.ErrNothingToSave) {
			dialog.ShowInformation(ui.localization.GetText(KeySaveFile), ui.localization.GetText(KeyNothingToSave), ui.window)
			return
		}
		dialog.ShowError(err, ui.window)
	}
}

func (ui *RootUI) onRetryConnection() {
	go func() {
		ctx, cancel := context.WithTimeout(ui.ctx, ConnectionRetryTimeout)
		defer cancel()
		ui.monitor.Check(ctx)
	}()
}

// onTaskUpdate handles task updates from the download manager
func (ui *RootUI) onTaskUpdate(task model.Task) {
	fyne.Do(func() {
		ui.renderTask(task)
	})
}

func (ui *RootUI) onConnectionUpdate(state model.ConnectionState) {
	fyne.Do(func() {
		ui.renderConnection(state)
	})
}

// renderTask must run on the UI goroutine
func (ui *RootUI) renderTask(task model.Task) {
	previous := ui.lastState
	ui.lastState = task.State

	if task.State == model.TaskStateIdle {
		ui.statusPanel.Hide()
		ui.downloadBtn.Enable()
		if previous == model.TaskStateReady {
			ui.urlEntry.SetText("")
		}
		return
	}

	ui.statusTitle.SetText(statusTitle(task.State, ui.localization))
	ui.statusMessage.SetText(task.Message)
	ui.progressLabel.SetText(progressText(task))

	switch task.State {
	case model.TaskStateDownloading:
		ui.progressBar.SetValue(task.Progress / 100)
		ui.progressBar.Show()
	case model.TaskStateReady:
		ui.progressBar.SetValue(1)
		ui.progressBar.Show()
	default:
		ui.progressBar.SetValue(0)
		ui.progressBar.Hide()
	}

	if task.State == model.TaskStateReady {
		ui.saveBtn.Show()
		if previous != model.TaskStateReady {
			ui.reloadHistory()
		}
	} else {
		ui.saveBtn.Hide()
	}

	if task.State.IsActive() {
		ui.downloadBtn.Disable()
	} else {
		ui.downloadBtn.Enable()
	}
	ui.statusPanel.Show()
}

// renderConnection must run on the UI goroutine
func (ui *RootUI) renderConnection(state model.ConnectionState) {
	ui.badgeLabel.SetText(badgeText(state, ui.localization))
	ui.badgeDot.FillColor = badgeColor(state)
	ui.badgeDot.Refresh()
}

func (ui *RootUI) reloadHistory() {
	ui.historyEntries = ui.history.Entries()
	if len(ui.historyEntries) == 0 {
		ui.historyEmpty.Show()
	} else {
		ui.historyEmpty.Hide()
	}
	ui.historyList.UnselectAll()
	ui.historyList.Refresh()
}

func (ui *RootUI) createHistoryItem() fyne.CanvasObject {
	title := widget.NewLabel("")
	title.Truncation = fyne.TextTruncateEllipsis
	detail := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	detail.Truncation = fyne.TextTruncateEllipsis
	return container.NewVBox(title, detail)
}

func (ui *RootUI) updateHistoryItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(ui.historyEntries) {
		return
	}
	entry := ui.historyEntries[id]

	row := item.(*fyne.Container)
	row.Objects[0].(*widget.Label).SetText(historyTitle(entry))
	row.Objects[1].(*widget.Label).SetText(historyDetail(entry, time.Now()))
}

// onHistorySelected puts a past link back into the input
func (ui *RootUI) onHistorySelected(id widget.ListItemID) {
	if id < 0 || id >= len(ui.historyEntries) {
		return
	}
	entry := ui.historyEntries[id]
	ui.urlEntry.SetText(entry.Link)
	ui.formatRadio.SetSelected(ui.formatLabel(entry.Format))
	ui.historyList.UnselectAll()
}

func (ui *RootUI) onClearHistory() {
	dialog.ShowConfirm(
		ui.localization.GetText(KeyClearHistory),
		ui.localization.GetText(KeyConfirmClearHistory),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ui.history.Clear()
			ui.reloadHistory()
		},
		ui.window,
	)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, SettingsCallbacks{
		OnAccentChanged: func(accent model.AccentColor) {
			ui.app.Settings().SetTheme(NewCompactTheme(accent))
		},
		OnClearHistory: ui.onClearHistory,
	})
}
