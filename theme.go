package dandelion

import "fmt"

// Palette names one of the built-in color themes.
type Palette uint8

const (
	PaletteDark Palette = iota
	PaletteDawn
	PaletteTwilight
	PaletteForest
)

// Palettes lists every palette in presentation order.
var Palettes = []Palette{PaletteDark, PaletteDawn, PaletteTwilight, PaletteForest}

// String returns the palette's identifier as used in config files.
func (p Palette) String() string {
	switch p {
	case PaletteDark:
		return "dark"
	case PaletteDawn:
		return "dawn"
	case PaletteTwilight:
		return "twilight"
	case PaletteForest:
		return "forest"
	default:
		return fmt.Sprintf("Palette(%d)", uint8(p))
	}
}

// Next returns the palette after p, wrapping around.
func (p Palette) Next() Palette {
	return Palettes[(int(p)+1)%len(Palettes)]
}

// ParsePalette converts an identifier produced by String back to a Palette.
func ParsePalette(name string) (Palette, error) {
	for _, p := range Palettes {
		if p.String() == name {
			return p, nil
		}
	}
	return PaletteDark, fmt.Errorf("unknown palette %q", name)
}

// Theme is the small fixed set of colors the renderer paints with.
type Theme struct {
	Background Color
	Card       Color
	Primary    Color
	Accent     Color
	Text       Color
	Secondary  Color
	Subtle     Color
	Pappus     Color

	// StemBase and StemTip are the two stops of the stem gradient.
	StemBase Color
	StemTip  Color
}

var (
	stemBaseColor = Color{0.64, 0.74, 0.36, 1}
	stemTipColor  = Color{0.76, 0.83, 0.42, 1}
)

// rgb is shorthand for an opaque Color.
func rgb(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// ThemeFor returns the theme of a palette. Unknown palettes get the dark theme.
func ThemeFor(p Palette) Theme {
	switch p {
	case PaletteDawn:
		return Theme{
			Background: rgb(0.97, 0.94, 0.91),
			Card:       rgb(1.0, 0.98, 0.96),
			Primary:    rgb(0.62, 0.44, 0.36),
			Accent:     rgb(0.78, 0.54, 0.46),
			Text:       rgb(0.36, 0.24, 0.20),
			Secondary:  rgb(0.55, 0.38, 0.34),
			Subtle:     rgb(0.85, 0.76, 0.72),
			Pappus:     rgb(0.70, 0.56, 0.50),
			StemBase:   stemBaseColor,
			StemTip:    stemTipColor,
		}
	case PaletteTwilight:
		return Theme{
			Background: rgb(0.10, 0.09, 0.16),
			Card:       rgb(0.16, 0.15, 0.24),
			Primary:    rgb(0.80, 0.78, 0.92),
			Accent:     rgb(0.70, 0.70, 0.80),
			Text:       rgb(0.92, 0.90, 0.97),
			Secondary:  rgb(0.62, 0.60, 0.72),
			Subtle:     rgb(0.26, 0.24, 0.34),
			Pappus:     rgb(0.93, 0.92, 0.98),
			StemBase:   stemBaseColor,
			StemTip:    stemTipColor,
		}
	case PaletteForest:
		return Theme{
			Background: rgb(0.07, 0.10, 0.07),
			Card:       rgb(0.13, 0.17, 0.13),
			Primary:    rgb(0.80, 0.86, 0.72),
			Accent:     rgb(0.54, 0.70, 0.48),
			Text:       rgb(0.90, 0.94, 0.86),
			Secondary:  rgb(0.58, 0.64, 0.54),
			Subtle:     rgb(0.22, 0.28, 0.22),
			Pappus:     rgb(0.92, 0.95, 0.88),
			StemBase:   stemBaseColor,
			StemTip:    stemTipColor,
		}
	default:
		return Theme{
			Background: rgb(0, 0, 0),
			Card:       rgb(0.11, 0.11, 0.12),
			Primary:    rgb(0.98, 0.93, 0.75),
			Accent:     rgb(0.85, 0.75, 0.45),
			Text:       rgb(0.98, 0.93, 0.75),
			Secondary:  rgb(0.55, 0.53, 0.50),
			Subtle:     rgb(0.22, 0.22, 0.23),
			Pappus:     rgb(0.97, 0.95, 0.90),
			StemBase:   stemBaseColor,
			StemTip:    stemTipColor,
		}
	}
}
