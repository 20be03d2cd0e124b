package ui

import (
	"image/color"
	"time"
)

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconVideo = "🎬"
	IconMusic = "🎵"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%.0f%%"
)

// Layout sizing
const (
	WindowWidth  float32 = 460
	WindowHeight float32 = 640

	BadgeDotSize float32 = 10

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
)

// Connection badge colours
var (
	BadgeConnected = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	BadgeChecking  = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	BadgeOffline   = color.RGBA{R: 183, G: 28, B: 28, A: 255}
)

// Timeouts
const (
	// ConnectionRetryTimeout bounds a manual connection check from the badge
	ConnectionRetryTimeout = 10 * time.Second
)
