package dandelion

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Flower is the flower configuration. A zero value uses DefaultConfig.
	Flower Config
	// Appearance persists palette and style changes. Nil keeps them in
	// memory for the session.
	Appearance *AppearanceStore
	// ScreenshotDir overrides where F12 captures are written.
	ScreenshotDir string

	// Script plays a scripted session. With ExitOnScriptEnd the window
	// closes once it is done.
	Script          *ScriptRunner
	ExitOnScriptEnd bool
}

// Interaction tuning for the window.
const (
	blowStrength = 2.2
	blowDuration = 1.6
)

// Game is an ebiten.Game showing one interactive flower:
//
//	Space   blow (hold to keep releasing seeds)
//	D       release every remaining seed
//	R       regrow
//	S / P   cycle style / palette
//	F12     screenshot
type Game struct {
	cfg        RunConfig
	bloom      *Bloom
	release    *ReleaseController
	gust       *Gust
	appearance *AppearanceStore
	raster     *Rasterizer
	script     *ScriptRunner
	overlay    statsOverlay

	now      float64
	wind     float64
	width    int
	height   int
	overflow float64
}

// NewGame builds the flower, release controller and renderer for cfg.
func NewGame(cfg RunConfig) *Game {
	if cfg.Flower == (Config{}) {
		cfg.Flower = DefaultConfig()
	}
	cfg.Flower.Sanitize()
	if cfg.Appearance == nil {
		cfg.Appearance = NewAppearanceStore(nil)
	}
	if !cfg.Appearance.Stored() {
		cfg.Appearance.SetStyle(cfg.Flower.StyleValue())
		cfg.Appearance.SetPalette(cfg.Flower.PaletteValue())
	}

	bcfg := BloomConfigFrom(cfg.Flower)
	bcfg.Style = cfg.Appearance.Style()
	bloom := NewBloom(bcfg)

	release := NewReleaseController(bloom.SeedCount(), DefaultSeed)
	release.SetDebugMode(cfg.Flower.Debug)

	raster := NewRasterizer()
	if cfg.ScreenshotDir != "" {
		raster.ScreenshotDir = cfg.ScreenshotDir
	}

	return &Game{
		cfg:        cfg,
		bloom:      bloom,
		release:    release,
		gust:       NewGust(cfg.Flower.WindStrength),
		appearance: cfg.Appearance,
		raster:     raster,
		script:     cfg.Script,
		width:      cfg.Width,
		height:     cfg.Height,
		overflow:   cfg.Flower.TopOverflow,
	}
}

// SetEventSink forwards release events to sink.
func (g *Game) SetEventSink(sink EventSink) {
	g.release.SetEventSink(sink)
}

// SetScript attaches a scripted session, replacing any previous one.
func (g *Game) SetScript(r *ScriptRunner) {
	g.script = r
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.script != nil {
		g.script.step(g)
		if g.script.Done() && g.cfg.ExitOnScriptEnd {
			return ebiten.Termination
		}
	}
	g.handleInput()
	g.advance(dt)

	if g.cfg.ShowFPS && g.overlay.update(dt) {
		g.overlay.setText(statsText(ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.bloom.Style(), g.appearance.Palette(), g.release.DetachedCount(), g.release.SeedCount()))
	}
	return nil
}

// advance moves the session clock forward by dt and updates the wind, the
// release anchors and the simulation in that order.
func (g *Game) advance(dt float64) {
	g.now += dt
	g.wind = g.gust.Update(g.now)
	g.release.Update(g.now)
	g.bloom.Update(g.now, g.wind)
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.blow()
	case inpututil.IsKeyJustReleased(ebiten.KeySpace):
		g.release.StopDetaching()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.release.DetachAll(g.now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restore()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.setStyle(g.bloom.Style().Next())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPalette(g.appearance.Palette().Next())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.raster.Screenshot("bloom_" + g.bloom.Style().String())
	}
}

func (g *Game) blow() {
	g.gust.Puff(blowStrength, blowDuration)
	g.release.StartDetaching(g.now)
}

func (g *Game) restore() {
	g.release.BeginRestore(g.now, g.bloom.RestoreDuration())
}

// setStyle switches style. A style with different seed counts regrows the
// flower with every seed attached.
func (g *Game) setStyle(s Style) {
	if g.bloom.SetStyle(s) {
		g.release.Resize(g.bloom.SeedCount())
	}
	g.appearance.SetStyle(s)
	g.saveAppearance()
}

func (g *Game) setPalette(p Palette) {
	g.appearance.SetPalette(p)
	g.saveAppearance()
}

func (g *Game) saveAppearance() {
	if err := g.appearance.Save(); err != nil {
		logger.Printf("appearance: %v", err)
	}
}

// canvas returns the visible area below the overflow band.
func (g *Game) canvas() Size {
	h := max(1, float64(g.height)-g.overflow)
	return Size{Width: float64(g.width), Height: h}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	theme := g.appearance.Theme()
	screen.Fill(theme.Background.ToRGBA())

	cmds := g.bloom.Draw(g.now, g.wind, theme, g.release.Anchors(), g.canvas(), g.overflow)
	g.raster.Submit(screen, cmds)

	if g.cfg.ShowFPS {
		g.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it is closed.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewGame(cfg)); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
