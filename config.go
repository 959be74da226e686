package dandelion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host-facing configuration of a displayed flower.
type Config struct {
	SeedCount        int     `yaml:"seedCount"`
	FilamentsPerSeed int     `yaml:"filamentsPerSeed"`
	WindStrength     float64 `yaml:"windStrength"`
	Style            string  `yaml:"style"`
	Palette          string  `yaml:"palette"`
	// TopOverflow is extra drawing space above the visible area, in canvas
	// units, so departing seeds are not clipped.
	TopOverflow float64 `yaml:"topOverflow"`
	Debug       bool    `yaml:"debug"`
}

// Config defaults.
const (
	DefaultSeedCount        = 140
	DefaultFilamentsPerSeed = 20
	DefaultWindStrength     = 0.6
	maxWindStrength         = 5
)

// DefaultConfig returns the configuration used when nothing is loaded.
func DefaultConfig() Config {
	return Config{
		SeedCount:        DefaultSeedCount,
		FilamentsPerSeed: DefaultFilamentsPerSeed,
		WindStrength:     DefaultWindStrength,
		Style:            StyleProcedural.String(),
		Palette:          PaletteDark.String(),
	}
}

// LoadConfig parses YAML on top of DefaultConfig, so omitted keys keep their
// defaults. The result is sanitized.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("load config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Sanitize clamps every field into its valid range. Unknown style or palette
// names fall back to the defaults with a logged warning.
func (c *Config) Sanitize() {
	c.SeedCount = max(c.SeedCount, MinSeedCount)
	c.FilamentsPerSeed = max(c.FilamentsPerSeed, MinFilamentsPerSeed)
	if !finite(c.WindStrength) {
		c.WindStrength = DefaultWindStrength
	}
	c.WindStrength = clamp(c.WindStrength, 0, maxWindStrength)
	if !finite(c.TopOverflow) || c.TopOverflow < 0 {
		c.TopOverflow = 0
	}
	if _, err := ParseStyle(c.Style); err != nil {
		logger.Printf("config: %v, using %s", err, StyleProcedural)
		c.Style = StyleProcedural.String()
	}
	if _, err := ParsePalette(c.Palette); err != nil {
		logger.Printf("config: %v, using %s", err, PaletteDark)
		c.Palette = PaletteDark.String()
	}
}

// StyleValue returns the configured style, or the default when unknown.
func (c Config) StyleValue() Style {
	s, _ := ParseStyle(c.Style)
	return s
}

// PaletteValue returns the configured palette, or the default when unknown.
func (c Config) PaletteValue() Palette {
	p, _ := ParsePalette(c.Palette)
	return p
}
