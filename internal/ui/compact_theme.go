package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/vidgrab/internal/model"
)

// Accent palette
var accentPalette = map[model.AccentColor]color.RGBA{
	model.AccentRed:    {R: 239, G: 68, B: 68, A: 255},
	model.AccentBlue:   {R: 59, G: 130, B: 246, A: 255},
	model.AccentGreen:  {R: 34, G: 197, B: 94, A: 255},
	model.AccentPurple: {R: 168, G: 85, B: 247, A: 255},
}

// AccentRGBA returns the colour of accent, red for unknown values
func AccentRGBA(accent model.AccentColor) color.RGBA {
	if c, ok := accentPalette[accent]; ok {
		return c
	}
	return accentPalette[model.AccentRed]
}

// CompactTheme is a compact theme with reduced padding and font sizes,
// tinted with the user selected accent
type CompactTheme struct {
	accent model.AccentColor
}

// NewCompactTheme creates a new compact theme for accent
func NewCompactTheme(accent model.AccentColor) fyne.Theme {
	return &CompactTheme{accent: accent}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	accent := AccentRGBA(t.accent)

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return accent
	case theme.ColorNameFocus, theme.ColorNameSelection:
		return color.RGBA{R: accent.R, G: accent.G, B: accent.B, A: 64}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2 // Reduced from default 4
	case theme.SizeNameScrollBar:
		return 12 // Reduced from default 16
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14 // Reduced from default 16
	case theme.SizeNameCaptionText:
		return 10 // Reduced from default 11
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 2 // Reduced from default 3
	}

	return theme.DefaultTheme().Size(name)
}
