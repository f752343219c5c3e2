package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PierreTheme tints the default theme with the product palette and tightens spacing
type PierreTheme struct{}

// NewTheme creates the application theme
func NewTheme() fyne.Theme {
	return &PierreTheme{}
}

// Color returns theme colors
func (t *PierreTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 124, G: 58, B: 237, A: 255} // Violet accent
	case theme.ColorNameError:
		return color.RGBA{R: 220, G: 38, B: 38, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 22, G: 163, B: 74, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 17, G: 17, B: 27, A: 255}
		}
		return color.RGBA{R: 249, G: 248, B: 252, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 236, G: 236, B: 241, A: 255}
		}
		return color.RGBA{R: 28, G: 25, B: 38, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PierreTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PierreTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PierreTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 4
	case theme.SizeNameHeadingText:
		return 20
	}

	return theme.DefaultTheme().Size(name)
}
