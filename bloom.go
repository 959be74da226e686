package dandelion

// BloomConfig configures a Bloom.
type BloomConfig struct {
	SeedCount        int
	FilamentsPerSeed int
	Style            Style
	Debug            bool
}

// BloomConfigFrom converts a loaded Config.
func BloomConfigFrom(c Config) BloomConfig {
	return BloomConfig{
		SeedCount:        c.SeedCount,
		FilamentsPerSeed: c.FilamentsPerSeed,
		Style:            c.StyleValue(),
		Debug:            c.Debug,
	}
}

// Bloom ties one displayed flower together: its style, the throttled
// simulation and a renderer. Anchors stay with the host.
type Bloom struct {
	requestedSeeds     int
	requestedFilaments int

	style    Style
	config   StyleConfig
	driver   *Driver
	renderer *Renderer
}

// NewBloom builds the simulation for cfg with the style's caps applied.
func NewBloom(cfg BloomConfig) *Bloom {
	b := &Bloom{
		requestedSeeds:     cfg.SeedCount,
		requestedFilaments: cfg.FilamentsPerSeed,
		style:              cfg.Style,
		config:             cfg.Style.Config(),
		renderer:           NewRenderer(),
	}
	b.renderer.SetDebugMode(cfg.Debug)
	b.rebuild()
	return b
}

func (b *Bloom) rebuild() {
	sim := NewSimulation(
		b.config.SeedCount(b.requestedSeeds),
		b.config.FilamentsPerSeed(b.requestedFilaments),
	)
	b.driver = NewDriver(sim)
}

// Style returns the active style.
func (b *Bloom) Style() Style { return b.style }

// SetStyle switches style. When the style changes the seed or filament
// count the flower is regenerated and SetStyle reports true; the host should
// then reset its anchors for the new SeedCount.
func (b *Bloom) SetStyle(s Style) bool {
	if s == b.style {
		return false
	}
	old := b.config
	b.style = s
	b.config = s.Config()
	if old.SeedCount(b.requestedSeeds) == b.config.SeedCount(b.requestedSeeds) &&
		old.FilamentsPerSeed(b.requestedFilaments) == b.config.FilamentsPerSeed(b.requestedFilaments) {
		return false
	}
	b.rebuild()
	return true
}

// SeedCount returns the number of seeds on the head.
func (b *Bloom) SeedCount() int { return len(b.driver.Simulation().Seeds()) }

// Simulation returns the simulation for read-only use.
func (b *Bloom) Simulation() *Simulation { return b.driver.Simulation() }

// RestoreDuration is the regrowth duration for the active style.
func (b *Bloom) RestoreDuration() float64 { return b.config.RestoreDuration() }

// Update steps the simulation with the style's wind multiplier applied. It
// reports whether a step was taken.
func (b *Bloom) Update(now, windStrength float64) bool {
	return b.driver.Step(now, b.config.Wind(windStrength))
}

// Draw renders the current state. The returned commands are valid until the
// next Draw.
func (b *Bloom) Draw(now, windStrength float64, theme Theme, anchors Anchors, canvas Size, topOverflow float64) []DrawCommand {
	return b.renderer.Draw(Frame{
		Simulation:   b.driver.Simulation(),
		Now:          now,
		WindStrength: b.config.Wind(windStrength),
		Style:        b.style,
		Theme:        theme,
		Anchors:      anchors,
		Canvas:       canvas,
		TopOverflow:  topOverflow,
	})
}
