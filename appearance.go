package dandelion

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Appearance is the user's persisted look choice.
type Appearance struct {
	Palette string `yaml:"palette"`
	Style   string `yaml:"style"`
}

// DefaultAppearance is the look used before anything is saved.
func DefaultAppearance() Appearance {
	return Appearance{Palette: PaletteDark.String(), Style: StyleProcedural.String()}
}

const (
	appearanceObject   = "appearance"
	appearanceProperty = "current"
)

// AppearanceStore keeps the palette and style choice across runs. With a nil
// gdata manager it works in memory only and Save is a no-op.
type AppearanceStore struct {
	data    *gdata.Manager
	current Appearance
	stored  bool
}

// NewAppearanceStore creates a store and loads any saved appearance. A failed
// load is logged and leaves the defaults in place.
func NewAppearanceStore(data *gdata.Manager) *AppearanceStore {
	s := &AppearanceStore{data: data, current: DefaultAppearance()}
	if err := s.Load(); err != nil {
		logger.Printf("appearance: %v (using defaults)", err)
	}
	return s
}

// Load reads the saved appearance. Missing data is not an error.
func (s *AppearanceStore) Load() error {
	s.current = DefaultAppearance()
	s.stored = false
	if s.data == nil || !s.data.ObjectPropExists(appearanceObject, appearanceProperty) {
		return nil
	}
	raw, err := s.data.LoadObjectProp(appearanceObject, appearanceProperty)
	if err != nil {
		return fmt.Errorf("load appearance: %w", err)
	}
	var a Appearance
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return fmt.Errorf("unmarshal appearance: %w", err)
	}
	if _, err := ParsePalette(a.Palette); err != nil {
		a.Palette = PaletteDark.String()
	}
	if _, err := ParseStyle(a.Style); err != nil {
		a.Style = StyleProcedural.String()
	}
	s.current = a
	s.stored = true
	return nil
}

// Stored reports whether the current appearance came from saved data.
func (s *AppearanceStore) Stored() bool { return s.stored }

// Save writes the current appearance.
func (s *AppearanceStore) Save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("marshal appearance: %w", err)
	}
	if err := s.data.SaveObjectProp(appearanceObject, appearanceProperty, raw); err != nil {
		return fmt.Errorf("save appearance: %w", err)
	}
	s.stored = true
	return nil
}

// Palette returns the selected palette.
func (s *AppearanceStore) Palette() Palette {
	p, _ := ParsePalette(s.current.Palette)
	return p
}

// Style returns the selected style.
func (s *AppearanceStore) Style() Style {
	st, _ := ParseStyle(s.current.Style)
	return st
}

// Theme returns the theme of the selected palette.
func (s *AppearanceStore) Theme() Theme {
	return ThemeFor(s.Palette())
}

// SetPalette selects p. Call Save to persist it.
func (s *AppearanceStore) SetPalette(p Palette) {
	s.current.Palette = p.String()
}

// SetStyle selects st. Call Save to persist it.
func (s *AppearanceStore) SetStyle(st Style) {
	s.current.Style = st.String()
}
