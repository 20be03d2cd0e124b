package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	isMobile bool
}

// NewMobileUI creates a new mobile UI helper for the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{isMobile: fyne.CurrentDevice().IsMobile()}
}

// CreateAdaptiveContainer lays objects out in columns on desktop and stacks
// them on phones
func (m *MobileUI) CreateAdaptiveContainer(columns int, objects ...fyne.CanvasObject) *fyne.Container {
	if m.isMobile {
		return container.NewVBox(objects...)
	}
	return container.NewAdaptiveGrid(columns, objects...)
}

// CreateTouchTarget returns obj unchanged on desktop. On phones it is
// stacked over a spacer so it is at least MobileButtonHeight tall. Only
// wrap objects that stay visible; the spacer keeps its size when obj hides.
func (m *MobileUI) CreateTouchTarget(obj fyne.CanvasObject) fyne.CanvasObject {
	if !m.isMobile {
		return obj
	}
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(MinTouchTargetSize, MobileButtonHeight))
	return container.NewStack(spacer, obj)
}
