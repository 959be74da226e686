package dandelion

import (
	"encoding/json"
	"fmt"
)

// Script actions.
const (
	ActionBlow       = "blow"       // puff and start releasing seeds
	ActionStop       = "stop"       // stop releasing
	ActionDetachAll  = "detach-all" // release every remaining seed
	ActionRestore    = "restore"    // regrow detached seeds
	ActionStyle      = "style"      // switch to Name, or the next style
	ActionPalette    = "palette"    // switch to Name, or the next palette
	ActionWind       = "wind"       // set the resting wind to Strength
	ActionScreenshot = "screenshot" // capture the next frame as Label
	ActionWait       = "wait"       // idle for Frames frames
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Name     string  `json:"name,omitempty"`
	Strength float64 `json:"strength,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a scripted session against a Game, one step per frame,
// for unattended captures and visual checks. Attach it with Game.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script:
//
//	{"steps": [
//		{"action": "wait", "frames": 60},
//		{"action": "blow"},
//		{"action": "wait", "frames": 90},
//		{"action": "screenshot", "label": "flight"}
//	]}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case ActionBlow, ActionStop, ActionDetachAll, ActionRestore, ActionScreenshot, ActionWait:
		return nil
	case ActionStyle:
		if st.Name != "" {
			if _, err := ParseStyle(st.Name); err != nil {
				return err
			}
		}
		return nil
	case ActionPalette:
		if st.Name != "" {
			if _, err := ParsePalette(st.Name); err != nil {
				return err
			}
		}
		return nil
	case ActionWind:
		if !finite(st.Strength) || st.Strength < 0 {
			return fmt.Errorf("invalid wind strength %v", st.Strength)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Game.Update.
func (r *ScriptRunner) step(g *Game) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionBlow:
		g.blow()
	case ActionStop:
		g.release.StopDetaching()
	case ActionDetachAll:
		g.release.DetachAll(g.now)
	case ActionRestore:
		g.restore()
	case ActionStyle:
		next := g.bloom.Style().Next()
		if st.Name != "" {
			next, _ = ParseStyle(st.Name)
		}
		g.setStyle(next)
	case ActionPalette:
		next := g.appearance.Palette().Next()
		if st.Name != "" {
			next, _ = ParsePalette(st.Name)
		}
		g.setPalette(next)
	case ActionWind:
		g.gust.SetBase(st.Strength)
	case ActionScreenshot:
		g.raster.Screenshot(st.Label)
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
