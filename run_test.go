package dandelion

import "testing"

func TestNewGameDefaults(t *testing.T) {
	g := NewGame(RunConfig{Width: 480, Height: 640})
	if g.cfg.Flower != DefaultConfig() {
		t.Errorf("Flower = %+v, want defaults", g.cfg.Flower)
	}
	if g.bloom.SeedCount() != DefaultSeedCount {
		t.Errorf("seeds = %d, want %d", g.bloom.SeedCount(), DefaultSeedCount)
	}
	if g.release.SeedCount() != g.bloom.SeedCount() {
		t.Errorf("release tracks %d seeds, bloom has %d", g.release.SeedCount(), g.bloom.SeedCount())
	}
	if g.gust.Base() != DefaultWindStrength {
		t.Errorf("gust base = %v", g.gust.Base())
	}
	if g.raster.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", g.raster.ScreenshotDir)
	}
}

func TestNewGameConfigLook(t *testing.T) {
	flower := DefaultConfig()
	flower.Style = "pencil"
	flower.Palette = "forest"
	g := NewGame(RunConfig{Flower: flower, ScreenshotDir: "shots"})
	if g.bloom.Style() != StylePencil || g.appearance.Palette() != PaletteForest {
		t.Errorf("look = %v/%v, want pencil/forest", g.bloom.Style(), g.appearance.Palette())
	}
	if g.release.SeedCount() != 120 {
		t.Errorf("release seeds = %d, want pencil cap 120", g.release.SeedCount())
	}
	if g.raster.ScreenshotDir != "shots" {
		t.Errorf("ScreenshotDir = %q", g.raster.ScreenshotDir)
	}
}

func TestNewGameStoredAppearanceWins(t *testing.T) {
	store := NewAppearanceStore(testDataManager(t))
	store.SetStyle(StyleWatercolor)
	store.SetPalette(PaletteDawn)
	if err := store.Save(); err != nil {
		t.Fatal(err)
	}

	flower := DefaultConfig()
	flower.Style = "pencil"
	g := NewGame(RunConfig{Flower: flower, Appearance: store})
	if g.bloom.Style() != StyleWatercolor || g.appearance.Palette() != PaletteDawn {
		t.Errorf("look = %v/%v, want the saved watercolor/dawn", g.bloom.Style(), g.appearance.Palette())
	}
}

func TestGameLayoutAndCanvas(t *testing.T) {
	flower := DefaultConfig()
	flower.TopOverflow = 160
	g := NewGame(RunConfig{Flower: flower})
	w, h := g.Layout(400, 900)
	if w != 400 || h != 900 {
		t.Errorf("Layout = %d, %d", w, h)
	}
	if c := g.canvas(); c != (Size{400, 740}) {
		t.Errorf("canvas = %+v, want 400x740", c)
	}
	g.Layout(400, 100)
	if c := g.canvas(); c.Height != 1 {
		t.Errorf("canvas height = %v when the overflow fills the window", c.Height)
	}
}
