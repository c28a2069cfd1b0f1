// Package ui provides the polyhouse configurator desktop UI.
//
// This file defines a compact Fyne theme with a greenhouse accent colour.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var accentGreen = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}

// PolyhouseTheme wraps the default Fyne theme with compact sizing overrides
// and a green primary colour.
type PolyhouseTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewPolyhouseTheme creates a new PolyhouseTheme with the system default variant.
func NewPolyhouseTheme() *PolyhouseTheme {
	return &PolyhouseTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewPolyhouseThemeWithVariant creates a PolyhouseTheme with a specific light/dark variant.
func NewPolyhouseThemeWithVariant(variant fyne.ThemeVariant) *PolyhouseTheme {
	return &PolyhouseTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// ThemeFor maps the preference string stored in AppConfig to a theme.
func ThemeFor(name string) *PolyhouseTheme {
	switch name {
	case "light":
		return NewPolyhouseThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewPolyhouseThemeWithVariant(theme.VariantDark)
	default:
		return NewPolyhouseTheme()
	}
}

// SetVariant updates the theme variant (light/dark/system).
func (t *PolyhouseTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

func (t *PolyhouseTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return accentGreen
	}
	return t.base.Color(name, t.variant)
}

func (t *PolyhouseTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PolyhouseTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *PolyhouseTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
