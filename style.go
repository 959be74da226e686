package dandelion

import "fmt"

// BaseRestoreDuration is the regrowth duration of the procedural style.
const BaseRestoreDuration = 1.8

// Style selects one of the visual treatments of the flower. Styles only tune
// the shared pipeline through a StyleConfig; the physics is identical.
type Style uint8

const (
	StyleProcedural Style = iota // clean vector strokes (default)
	StyleWatercolor              // soft translucent pulses over the strokes
	StylePencil                  // dashed, sketchy strokes
)

// Styles lists every style in presentation order.
var Styles = []Style{StyleProcedural, StyleWatercolor, StylePencil}

// String returns the style's identifier as used in config files.
func (s Style) String() string {
	switch s {
	case StyleProcedural:
		return "procedural"
	case StyleWatercolor:
		return "watercolor"
	case StylePencil:
		return "pencil"
	default:
		return fmt.Sprintf("Style(%d)", uint8(s))
	}
}

// DisplayName returns a human-readable name.
func (s Style) DisplayName() string {
	switch s {
	case StyleWatercolor:
		return "Watercolor"
	case StylePencil:
		return "Pencil Art"
	default:
		return "Procedural"
	}
}

// Next returns the style after s, wrapping around.
func (s Style) Next() Style {
	return Styles[(int(s)+1)%len(Styles)]
}

// ParseStyle converts an identifier produced by String back to a Style.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles {
		if s.String() == name {
			return s, nil
		}
	}
	return StyleProcedural, fmt.Errorf("unknown style %q", name)
}

// StyleConfig holds the knobs a Style applies before generation and
// rendering. Dash lengths are fractions of the head radius; an empty pattern
// means a solid stroke.
type StyleConfig struct {
	SeedCountCap              int
	FilamentDelta             int
	WindMultiplier            float64
	RestoreDurationMultiplier float64

	StemDash     []float64
	FilamentDash []float64
	BeakDash     []float64

	// Pulse enables the translucent breathing overlays on the stem, core
	// and pappus crowns.
	Pulse bool
}

// Config resolves the style's configuration record.
func (s Style) Config() StyleConfig {
	switch s {
	case StyleWatercolor:
		return StyleConfig{
			SeedCountCap:              110,
			FilamentDelta:             -4,
			WindMultiplier:            0.85,
			RestoreDurationMultiplier: 1.2,
			Pulse:                     true,
		}
	case StylePencil:
		return StyleConfig{
			SeedCountCap:              120,
			FilamentDelta:             -6,
			WindMultiplier:            0.7,
			RestoreDurationMultiplier: 1.1,
			StemDash:                  []float64{0.12, 0.05},
			FilamentDash:              []float64{0.03, 0.015},
			BeakDash:                  []float64{0.04, 0.02},
		}
	default:
		return StyleConfig{
			SeedCountCap:              140,
			WindMultiplier:            1,
			RestoreDurationMultiplier: 1,
		}
	}
}

// SeedCount applies the style's cap to a requested seed count.
func (c StyleConfig) SeedCount(requested int) int {
	n := max(requested, MinSeedCount)
	if c.SeedCountCap > 0 {
		n = min(n, c.SeedCountCap)
	}
	return n
}

// FilamentsPerSeed applies the style's delta to a requested filament count.
func (c StyleConfig) FilamentsPerSeed(requested int) int {
	return max(requested+c.FilamentDelta, MinFilamentsPerSeed)
}

// Wind scales a host wind strength by the style's multiplier.
func (c StyleConfig) Wind(strength float64) float64 {
	if !finite(strength) || strength < 0 {
		return 0
	}
	return strength * c.WindMultiplier
}

// RestoreDuration returns the regrowth duration for the style.
func (c StyleConfig) RestoreDuration() float64 {
	m := c.RestoreDurationMultiplier
	if m <= 0 {
		m = 1
	}
	return BaseRestoreDuration * m
}
