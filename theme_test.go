package dandelion

import "testing"

func TestPaletteParseRoundTrip(t *testing.T) {
	for _, p := range Palettes {
		got, err := ParsePalette(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePalette(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePalette("neon"); err == nil {
		t.Error("ParsePalette(neon) returned no error")
	}
}

func TestPaletteNextWraps(t *testing.T) {
	if got := PaletteForest.Next(); got != PaletteDark {
		t.Errorf("PaletteForest.Next() = %v, want dark", got)
	}
	if got := PaletteDark.Next(); got != PaletteDawn {
		t.Errorf("PaletteDark.Next() = %v, want dawn", got)
	}
}

func TestThemesAreDistinctAndOpaque(t *testing.T) {
	seen := map[Color]Palette{}
	for _, p := range Palettes {
		th := ThemeFor(p)
		if other, dup := seen[th.Background]; dup {
			t.Errorf("%v shares its background with %v", p, other)
		}
		seen[th.Background] = p
		for _, c := range []Color{th.Primary, th.Accent, th.Subtle, th.Pappus, th.StemBase, th.StemTip} {
			if c.A != 1 {
				t.Errorf("%v has a translucent theme color %v", p, c)
			}
		}
	}
}

func TestThemeForUnknownIsDark(t *testing.T) {
	if ThemeFor(Palette(200)) != ThemeFor(PaletteDark) {
		t.Error("unknown palette did not fall back to dark")
	}
}
