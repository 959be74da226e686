package dandelion

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// captureLog redirects the package logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	SetLogOutput(log.New(&buf, "", 0))
	t.Cleanup(func() { logger = prev })
	return &buf
}

func TestDebugModeLogsStats(t *testing.T) {
	buf := captureLog(t)
	r := NewRenderer()
	r.SetDebugMode(true)

	f := testFrame(settledSim(12), StyleProcedural)
	f.Anchors.DetachedSeedTimes = map[int]float64{0: 0.5}
	r.Draw(f)

	out := buf.String()
	for _, want := range []string{"commands: ", "seeds drawn: 12", "culled: 0", "core 1", "flight 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugModeOffIsQuiet(t *testing.T) {
	buf := captureLog(t)
	r := NewRenderer()
	r.Draw(testFrame(settledSim(12), StyleProcedural))
	if buf.Len() != 0 {
		t.Errorf("renderer logged without debug mode: %s", buf.String())
	}
}

func TestSetLogOutputNilSilences(t *testing.T) {
	prev := logger
	t.Cleanup(func() { logger = prev })
	SetLogOutput(nil)
	logger.Printf("dropped")
}

func TestCountLayers(t *testing.T) {
	cmds := []DrawCommand{
		{Layer: LayerStem}, {Layer: LayerBack}, {Layer: LayerBack},
		{Layer: LayerCore}, {Layer: LayerFlight}, {Layer: Layer(42)},
	}
	got := countLayers(cmds)
	want := [LayerFlight + 1]int{1, 2, 1, 0, 1}
	if got != want {
		t.Errorf("countLayers = %v, want %v", got, want)
	}
}
