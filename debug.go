package dandelion

import (
	"log"
	"os"
	"time"
)

// logger receives debug statistics and fallback warnings.
var logger = log.New(os.Stderr, "[dandelion] ", log.LstdFlags)

// SetLogOutput redirects the package logger. Pass nil to silence it.
func SetLogOutput(l *log.Logger) {
	if l == nil {
		l = log.New(discard{}, "", 0)
	}
	logger = l
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// renderStats holds per-frame metrics. Only populated in debug mode.
type renderStats struct {
	emitTime     time.Duration
	commandCount int
	segmentCount int
	seedsDrawn   int
	seedsCulled  int
}

// SetDebugMode enables per-frame timing and count logging.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

func (r *Renderer) debugLog() {
	if !r.debug {
		return
	}
	s := r.stats
	layers := countLayers(r.commands)
	logger.Printf("emit: %v | commands: %d | segments: %d | seeds drawn: %d | culled: %d",
		s.emitTime, s.commandCount, s.segmentCount, s.seedsDrawn, s.seedsCulled)
	logger.Printf("layers: stem %d | back %d | core %d | front %d | flight %d",
		layers[LayerStem], layers[LayerBack], layers[LayerCore], layers[LayerFront], layers[LayerFlight])
}

// countLayers returns how many commands fall in each layer.
func countLayers(cmds []DrawCommand) [LayerFlight + 1]int {
	var counts [LayerFlight + 1]int
	for i := range cmds {
		if int(cmds[i].Layer) < len(counts) {
			counts[cmds[i].Layer]++
		}
	}
	return counts
}
