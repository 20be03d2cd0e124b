// Package ui contains the Fyne-based desktop user interface. It feeds links
// into the download manager, renders the active task and the connection
// badge, and lists recent downloads. All UI strings are localized via
// Localization.
package ui
