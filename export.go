package dandelion

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/vector"
)

// ExportOptions controls offline export of a command list.
type ExportOptions struct {
	// Viewport is the canvas region to export. A zero viewport exports
	// nothing useful; see FrameViewport.
	Viewport Rect
	// Width and Height are the output size in pixels. Zero uses the
	// viewport size. The viewport is scaled uniformly and centered.
	Width, Height int
	// Background is painted first unless its alpha is zero.
	Background Color
}

// FrameViewport returns the whole drawing space of a frame, overflow band
// included.
func FrameViewport(canvas Size, topOverflow float64) Rect {
	return Rect{Width: canvas.Width, Height: canvas.Height + max(0, topOverflow)}
}

// outputSize returns the pixel size and the canvas→pixel transform.
func (o ExportOptions) outputSize() (w, h int, scale, dx, dy float64) {
	vp := o.Viewport
	w, h = o.Width, o.Height
	if w <= 0 {
		w = int(math.Ceil(vp.Width))
	}
	if h <= 0 {
		h = int(math.Ceil(vp.Height))
	}
	w, h = max(w, 1), max(h, 1)
	scale = 1
	if vp.Width > 0 && vp.Height > 0 {
		scale = math.Min(float64(w)/vp.Width, float64(h)/vp.Height)
	}
	dx = (float64(w)-vp.Width*scale)/2 - vp.X*scale
	dy = (float64(h)-vp.Height*scale)/2 - vp.Y*scale
	return w, h, scale, dx, dy
}

// --- PNG ---

// WritePNG rasterizes cmds on the CPU and encodes the result as PNG.
func WritePNG(w io.Writer, cmds []DrawCommand, opts ExportOptions) error {
	img := RasterizeImage(cmds, opts)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RasterizeImage paints cmds into a new premultiplied RGBA image. Each
// command is filled as one path, so overlapping pieces of the same command
// do not darken each other.
func RasterizeImage(cmds []DrawCommand, opts ExportOptions) *image.RGBA {
	w, h, scale, dx, dy := opts.outputSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background.A > 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background.ToRGBA()), image.Point{}, draw.Src)
	}

	toPixel := func(p Vec2) Vec2 { return Vec2{p.X*scale + dx, p.Y*scale + dy} }
	frame := Rect{Width: float64(w), Height: float64(h)}

	var (
		tess    Tessellator
		contour []Vec2
		z       vector.Rasterizer
	)
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Alpha() <= 0 {
			continue
		}
		tess.outlineOf(cmd)
		if len(tess.out.points) == 0 {
			continue
		}
		b := pointBounds(tess.out.points)
		b = Rect{b.X*scale + dx, b.Y*scale + dy, b.Width * scale, b.Height * scale}
		if !b.Intersects(frame) {
			continue
		}
		clip := image.Rect(
			int(math.Floor(b.X))-1, int(math.Floor(b.Y))-1,
			int(math.Ceil(b.X+b.Width))+1, int(math.Ceil(b.Y+b.Height))+1,
		).Intersect(dst.Bounds())
		if clip.Empty() {
			continue
		}

		z.Reset(clip.Dx(), clip.Dy())
		ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
		for _, s := range tess.out.shapes {
			contour = tess.out.contour(s, contour[:0])
			for j, p := range contour {
				q := toPixel(p)
				x, y := float32(q.X-ox), float32(q.Y-oy)
				if j == 0 {
					z.MoveTo(x, y)
				} else {
					z.LineTo(x, y)
				}
			}
			z.ClosePath()
		}
		z.DrawOp = draw.Over
		z.Draw(dst, clip, commandPaint(cmd, scale, dx, dy), clip.Min)
	}
	return dst
}

// pointBounds returns the bounding box of pts.
func pointBounds(pts []Vec2) Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// commandPaint returns the source image a command is filled with.
func commandPaint(cmd *DrawCommand, scale, dx, dy float64) image.Image {
	if cmd.Gradient == nil {
		return image.NewUniform(cmd.Color.WithAlpha(cmd.Opacity).ToRGBA())
	}
	return &gradientImage{g: cmd.Gradient, opacity: cmd.Opacity, scale: scale, dx: dx, dy: dy}
}

// gradientImage is an unbounded image that samples a Gradient at pixel
// centers, mapped back to canvas space.
type gradientImage struct {
	g       *Gradient
	opacity float64
	scale   float64
	dx, dy  float64
}

func (gi *gradientImage) ColorModel() color.Model { return color.RGBAModel }

func (gi *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (gi *gradientImage) At(x, y int) color.Color {
	p := Vec2{
		X: (float64(x) + 0.5 - gi.dx) / gi.scale,
		Y: (float64(y) + 0.5 - gi.dy) / gi.scale,
	}
	return gi.g.ColorAt(p).WithAlpha(gi.opacity).ToRGBA()
}

// --- SVG ---

// WriteSVG writes cmds as a standalone SVG document. Strokes stay strokes
// with round caps, so the output scales cleanly.
func WriteSVG(w io.Writer, cmds []DrawCommand, opts ExportOptions) error {
	ow, oh, _, _, _ := opts.outputSize()
	vp := opts.Viewport
	sw := &svgWriter{w: bufio.NewWriter(w)}

	sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%s %s %s %s">`+"\n",
		ow, oh, num(vp.X), num(vp.Y), num(vp.Width), num(vp.Height))
	if opts.Background.A > 0 {
		sw.printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="%s"/>`+"\n",
			num(vp.X), num(vp.Y), num(vp.Width), num(vp.Height), hexColor(opts.Background), num(opts.Background.A))
	}
	gradients := 0
	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Alpha() <= 0 {
			continue
		}
		paint := hexColor(cmd.Color)
		paintOpacity := cmd.Color.A
		if cmd.Gradient != nil {
			id := "g" + strconv.Itoa(gradients)
			gradients++
			sw.gradient(id, cmd.Gradient)
			paint = "url(#" + id + ")"
			paintOpacity = 1
		}
		switch cmd.Type {
		case CommandStroke:
			sw.stroke(cmd, paint, paintOpacity)
		case CommandEllipse:
			sw.printf(`<circle cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="%s" opacity="%s"/>`+"\n",
				num(cmd.Center.X), num(cmd.Center.Y), num(cmd.Radius), paint, num(paintOpacity), num(cmd.Opacity))
		case CommandCapsule:
			r := math.Min(cmd.Thickness, cmd.Length) / 2
			sw.printf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" fill-opacity="%s" opacity="%s" transform="rotate(%s %s %s)"/>`+"\n",
				num(cmd.Center.X-cmd.Length/2), num(cmd.Center.Y-cmd.Thickness/2),
				num(cmd.Length), num(cmd.Thickness), num(r),
				paint, num(paintOpacity), num(cmd.Opacity),
				num(cmd.Rotation*180/math.Pi), num(cmd.Center.X), num(cmd.Center.Y))
		}
	}
	sw.printf("</svg>\n")
	if sw.err != nil {
		return fmt.Errorf("write svg: %w", sw.err)
	}
	if err := sw.w.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// svgWriter keeps the first write error so callers check once at the end.
type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) gradient(id string, g *Gradient) {
	switch g.Type {
	case GradientLinear:
		s.printf(`<defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, num(g.Start.X), num(g.Start.Y), num(g.End.X), num(g.End.Y))
	case GradientRadial:
		s.printf(`<defs><radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`,
			id, num(g.Center.X), num(g.Center.Y), num(g.Radius))
	}
	for _, stop := range g.Stops {
		s.printf(`<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`,
			num(stop.Offset), hexColor(stop.Color), num(stop.Color.A))
	}
	if g.Type == GradientRadial {
		s.printf("</radialGradient></defs>\n")
	} else {
		s.printf("</linearGradient></defs>\n")
	}
}

func (s *svgWriter) stroke(cmd *DrawCommand, paint string, paintOpacity float64) {
	var d strings.Builder
	for _, seg := range cmd.Segments {
		d.WriteString("M" + num(seg.From.X) + " " + num(seg.From.Y))
		if seg.Curve {
			d.WriteString("Q" + num(seg.Control.X) + " " + num(seg.Control.Y) + " ")
		} else {
			d.WriteString("L")
		}
		d.WriteString(num(seg.To.X) + " " + num(seg.To.Y))
	}
	dash := ""
	if len(cmd.Dash) > 0 {
		parts := make([]string, len(cmd.Dash))
		for i, v := range cmd.Dash {
			parts[i] = num(v)
		}
		dash = ` stroke-dasharray="` + strings.Join(parts, " ") + `"`
	}
	s.printf(`<path d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" opacity="%s"%s/>`+"\n",
		d.String(), paint, num(paintOpacity), num(cmd.Width), num(cmd.Opacity), dash)
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	if !finite(v) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// hexColor formats the RGB part of c as #rrggbb.
func hexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}
