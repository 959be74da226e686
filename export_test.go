package dandelion

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

var (
	red  = Color{1, 0, 0, 1}
	blue = Color{0, 0, 1, 1}
)

func exportCmds() []DrawCommand {
	return []DrawCommand{
		{Type: CommandEllipse, Center: Vec2{50, 50}, Radius: 20, Color: red, Opacity: 1},
		{
			Type:     CommandStroke,
			Segments: []Segment{{From: Vec2{10, 90}, Control: Vec2{50, 70}, To: Vec2{90, 90}, Curve: true}},
			Width:    2,
			Dash:     []float64{2, 1.5},
			Color:    blue,
			Opacity:  0.5,
		},
		{Type: CommandEllipse, Center: Vec2{10, 10}, Radius: 5, Color: red, Opacity: 0},
	}
}

func exportOpts() ExportOptions {
	return ExportOptions{Viewport: Rect{Width: 100, Height: 100}, Background: blue}
}

// --- Output size ---

func TestOutputSize(t *testing.T) {
	tests := []struct {
		name          string
		opts          ExportOptions
		w, h          int
		scale, dx, dy float64
	}{
		{"viewport size", ExportOptions{Viewport: Rect{Width: 100, Height: 50}}, 100, 50, 1, 0, 0},
		{"letterboxed", ExportOptions{Viewport: Rect{Width: 100, Height: 100}, Width: 200, Height: 100}, 200, 100, 1, 50, 0},
		{"scaled", ExportOptions{Viewport: Rect{Width: 100, Height: 100}, Width: 300, Height: 300}, 300, 300, 3, 0, 0},
		{"offset", ExportOptions{Viewport: Rect{X: 10, Y: 20, Width: 10, Height: 10}}, 10, 10, 1, -10, -20},
		{"empty", ExportOptions{}, 1, 1, 1, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, scale, dx, dy := tt.opts.outputSize()
			if w != tt.w || h != tt.h || scale != tt.scale || dx != tt.dx || dy != tt.dy {
				t.Errorf("outputSize = %d %d %v %v %v, want %d %d %v %v %v",
					w, h, scale, dx, dy, tt.w, tt.h, tt.scale, tt.dx, tt.dy)
			}
		})
	}
}

func TestFrameViewport(t *testing.T) {
	if got := FrameViewport(Size{400, 600}, 100); got != (Rect{Width: 400, Height: 700}) {
		t.Errorf("FrameViewport = %+v", got)
	}
	if got := FrameViewport(Size{400, 600}, -5); got.Height != 600 {
		t.Errorf("negative overflow grew the viewport to %v", got.Height)
	}
}

// --- PNG ---

func TestRasterizeImagePixels(t *testing.T) {
	img := RasterizeImage(exportCmds(), exportOpts())
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("background pixel = %v", got)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("ellipse center = %v", got)
	}
	// The zero-opacity ellipse at (10, 10) leaves the background alone.
	if got := img.RGBAAt(10, 10); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("invisible ellipse painted %v", got)
	}
}

func TestRasterizeImageGradient(t *testing.T) {
	cmd := DrawCommand{
		Type: CommandEllipse, Center: Vec2{50, 50}, Radius: 40, Color: red, Opacity: 1,
		Gradient: &Gradient{
			Type: GradientRadial, Center: Vec2{50, 50}, Radius: 40,
			Stops: []GradientStop{{0, red}, {1, blue}},
		},
	}
	img := RasterizeImage([]DrawCommand{cmd}, ExportOptions{Viewport: Rect{Width: 100, Height: 100}})
	center, edge := img.RGBAAt(50, 50), img.RGBAAt(50, 85)
	if !(center.R > center.B) || !(edge.B > edge.R) {
		t.Errorf("gradient center %v, edge %v", center, edge)
	}
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("transparent background = %v", got)
	}
}

func TestWritePNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	opts := exportOpts()
	opts.Width, opts.Height = 64, 32
	if err := WritePNG(&buf, exportCmds(), opts); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestRasterizeFlowerFrame(t *testing.T) {
	f := testFrame(settledSim(40), StyleWatercolor)
	opts := ExportOptions{Viewport: FrameViewport(f.Canvas, f.TopOverflow), Width: 200}
	img := RasterizeImage(DrawFrame(f), opts)
	painted := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatal("flower frame painted nothing")
	}
}

// --- SVG ---

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, exportCmds(), exportOpts()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">`,
		`<rect x="0" y="0" width="100" height="100" fill="#0000ff"`,
		`<circle cx="50" cy="50" r="20" fill="#ff0000"`,
		`d="M10 90Q50 70 90 90"`,
		`stroke-dasharray="2 1.5"`,
		`opacity="0.5"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if n := strings.Count(out, "<circle"); n != 1 {
		t.Errorf("circles = %d, want 1 (invisible ellipse skipped)", n)
	}
}

func TestWriteSVGGradients(t *testing.T) {
	var buf bytes.Buffer
	f := testFrame(settledSim(5), StyleProcedural)
	if err := WriteSVG(&buf, DrawFrame(f), ExportOptions{Viewport: FrameViewport(f.Canvas, f.TopOverflow)}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `<linearGradient id="g0"`) || !strings.Contains(out, `<radialGradient id="g1"`) {
		t.Error("stem and core gradients not defined")
	}
	if !strings.Contains(out, `stroke="url(#g0)"`) || !strings.Contains(out, `fill="url(#g1)"`) {
		t.Error("gradients not referenced")
	}
	if strings.Count(out, "<rect") != 5 {
		t.Errorf("achene capsules = %d, want 5", strings.Count(out, "<rect"))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGReportsWriteError(t *testing.T) {
	err := WriteSVG(failingWriter{}, exportCmds(), exportOpts())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v, want disk full", err)
	}
}

// --- Formatting ---

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{0.5, "0.5"},
		{1.23456, "1.235"},
		{-3.25, "-3.25"},
		{-0.0001, "0"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || !approxEqual(c.G, 128.0/255, epsilon) || c.B != 0 || c.A != 1 {
		t.Errorf("ParseHexColor = %+v", c)
	}
	if got := hexColor(c); got != "#ff8000" {
		t.Errorf("hexColor round trip = %q", got)
	}
	for _, bad := range []string{"#12", "zzzzzz", "#1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) returned no error", bad)
		}
	}
}
