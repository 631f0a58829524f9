package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme gives the table a black-on-white look in light mode and
// white-on-black in dark mode, with a single accent color.
type CustomTheme struct{}

var _ fyne.Theme = (*CustomTheme)(nil)

var (
	lightPalette = map[fyne.ThemeColorName]color.Color{
		theme.ColorNameBackground:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		theme.ColorNameInputBackground:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		theme.ColorNameInputBorder:      color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		theme.ColorNameSeparator:        color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x26, G: 0x63, B: 0xeb, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0xdb, G: 0xea, B: 0xfe, A: 0xff},
	}
	darkPalette = map[fyne.ThemeColorName]color.Color{
		theme.ColorNameBackground:       color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
		theme.ColorNameForeground:       color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
		theme.ColorNameInputBackground:  color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff},
		theme.ColorNameInputBorder:      color.NRGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff},
		theme.ColorNameHeaderBackground: color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff},
		theme.ColorNameSeparator:        color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		theme.ColorNamePrimary:          color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
		theme.ColorNameSelection:        color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff},
	}
)

func (m CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	palette := darkPalette
	if variant == theme.VariantLight {
		palette = lightPalette
	}
	if c, ok := palette[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameSeparatorThickness:
		return 1
	case theme.SizeNameInputBorder:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}
