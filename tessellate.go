package dandelion

import "math"

// Vertex is a tessellated vertex. Its color is premultiplied.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Reset empties the mesh, keeping its buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// shapeKind says how a run of outline points is laid out.
type shapeKind uint8

const (
	// shapeStrip points alternate left/right edges of a ribbon: l0 r0 l1 r1 ...
	shapeStrip shapeKind = iota
	// shapeFan points form a convex polygon.
	shapeFan
	// shapeDisc points are a center followed by rings rings of
	// ellipseSegments points each, innermost first.
	shapeDisc
)

type shape struct {
	kind       shapeKind
	start, end int // range in outline.points
	rings      int // shapeDisc only
}

// outline is the filled geometry of one draw command.
type outline struct {
	points []Vec2
	shapes []shape
}

func (o *outline) reset() {
	o.points = o.points[:0]
	o.shapes = o.shapes[:0]
}

// contour appends the closed boundary of s to dst.
func (o *outline) contour(s shape, dst []Vec2) []Vec2 {
	pts := o.points[s.start:s.end]
	switch s.kind {
	case shapeStrip:
		n := len(pts) / 2
		for i := 0; i < n; i++ {
			dst = append(dst, pts[i*2])
		}
		for i := n - 1; i >= 0; i-- {
			dst = append(dst, pts[i*2+1])
		}
	case shapeFan:
		dst = append(dst, pts...)
	case shapeDisc:
		dst = append(dst, pts[len(pts)-ellipseSegments:]...)
	}
	return dst
}

// Tessellation resolution.
const (
	ellipseSegments  = 32
	capsuleArcSteps  = 8
	minCurveSteps    = 3
	maxCurveSteps    = 24
	curveStepLength  = 6.0
	maxMiterScale    = 2.0
	degenerateLength = 1e-10
)

// Tessellator converts draw commands into triangles. Its buffers grow to a
// high-water mark and are reused across frames.
type Tessellator struct {
	mesh Mesh
	out  outline
	flat []Vec2
	dash []Vec2
}

// NewTessellator creates an empty tessellator.
func NewTessellator() *Tessellator {
	return &Tessellator{}
}

// Tessellate appends the triangles of cmds to the tessellator's mesh, in
// order, and returns it. The mesh is valid until the next call.
func (t *Tessellator) Tessellate(cmds []DrawCommand) *Mesh {
	t.mesh.Reset()
	for i := range cmds {
		t.Append(&cmds[i])
	}
	return &t.mesh
}

// Append adds one command's triangles to the mesh.
func (t *Tessellator) Append(cmd *DrawCommand) {
	if cmd.Alpha() <= 0 {
		return
	}
	t.outlineOf(cmd)
	for _, s := range t.out.shapes {
		t.appendShape(cmd, s)
	}
}

// outlineOf fills t.out with the geometry of cmd.
func (t *Tessellator) outlineOf(cmd *DrawCommand) {
	t.out.reset()
	switch cmd.Type {
	case CommandStroke:
		t.outlineStroke(cmd)
	case CommandEllipse:
		outlineEllipse(&t.out, cmd)
	case CommandCapsule:
		outlineCapsule(&t.out, cmd)
	}
}

// --- Strokes ---

func (t *Tessellator) outlineStroke(cmd *DrawCommand) {
	if cmd.Width <= 0 {
		return
	}
	halfW := cmd.Width / 2
	for _, seg := range cmd.Segments {
		t.flat = flattenSegment(seg, t.flat[:0])
		if len(cmd.Dash) == 0 {
			appendRibbon(&t.out, t.flat, halfW)
			continue
		}
		t.dashPolyline(t.flat, cmd.Dash, halfW)
	}
}

// flattenSegment samples seg into a polyline appended to dst.
func flattenSegment(seg Segment, dst []Vec2) []Vec2 {
	if !seg.Curve {
		return append(dst, seg.From, seg.To)
	}
	approx := seg.Control.Sub(seg.From).Len() + seg.To.Sub(seg.Control).Len()
	steps := int(math.Ceil(approx / curveStepLength))
	steps = max(minCurveSteps, min(maxCurveSteps, steps))
	a, c, b := seg.From, seg.Control, seg.To
	for i := 0; i <= steps; i++ {
		s := float64(i) / float64(steps)
		u := 1 - s
		dst = append(dst, Vec2{
			X: u*u*a.X + 2*u*s*c.X + s*s*b.X,
			Y: u*u*a.Y + 2*u*s*c.Y + s*s*b.Y,
		})
	}
	return dst
}

// dashPolyline splits pts into the "on" runs of pattern and ribbons each.
func (t *Tessellator) dashPolyline(pts []Vec2, pattern []float64, halfW float64) {
	var total float64
	for _, d := range pattern {
		total += max(0, d)
	}
	if total <= 0 {
		appendRibbon(&t.out, pts, halfW)
		return
	}

	idx := 0
	left := max(0, pattern[0])
	on := true
	t.dash = append(t.dash[:0], pts[0])
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := b.Sub(a).Len()
		pos := 0.0
		for segLen-pos > left {
			pos += left
			p := a.Add(b.Sub(a).Scale(pos / segLen))
			if on {
				t.dash = append(t.dash, p)
				appendRibbon(&t.out, t.dash, halfW)
			}
			t.dash = append(t.dash[:0], p)
			on = !on
			idx = (idx + 1) % len(pattern)
			left = max(0, pattern[idx])
		}
		left -= segLen - pos
		if on {
			t.dash = append(t.dash, b)
		}
	}
	if on {
		appendRibbon(&t.out, t.dash, halfW)
	}
}

// appendRibbon widens a polyline into a strip with mitered joins.
func appendRibbon(o *outline, pts []Vec2, halfW float64) {
	n := len(pts)
	if n < 2 {
		return
	}
	start := len(o.points)
	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0:
			nx, ny = perpendicular(pts[0], pts[1])
		case i == n-1:
			nx, ny = perpendicular(pts[n-2], pts[n-1])
		default:
			nx0, ny0 := perpendicular(pts[i-1], pts[i])
			nx1, ny1 := perpendicular(pts[i], pts[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > degenerateLength {
				nx /= ln
				ny /= ln
			}
			// Keep the width at the joint, clamped at sharp corners.
			if dot := nx0*nx + ny0*ny; dot > 0.1 {
				scale := min(1/dot, maxMiterScale)
				nx *= scale
				ny *= scale
			}
		}
		p := pts[i]
		o.points = append(o.points,
			Vec2{p.X + nx*halfW, p.Y + ny*halfW},
			Vec2{p.X - nx*halfW, p.Y - ny*halfW},
		)
	}
	o.shapes = append(o.shapes, shape{kind: shapeStrip, start: start, end: len(o.points)})
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < degenerateLength {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// --- Fills ---

// outlineEllipse builds a disc. Radial gradients get one ring per stop that
// falls inside the disc so the stops survive vertex color interpolation.
func outlineEllipse(o *outline, cmd *DrawCommand) {
	if cmd.Radius <= 0 {
		return
	}
	start := len(o.points)
	o.points = append(o.points, cmd.Center)
	rings := 0
	if g := cmd.Gradient; g != nil && g.Type == GradientRadial && g.Radius > 0 {
		for _, stop := range g.Stops {
			r := stop.Offset * g.Radius
			if r <= 0 || r >= cmd.Radius {
				continue
			}
			appendRing(o, cmd.Center, r)
			rings++
		}
	}
	appendRing(o, cmd.Center, cmd.Radius)
	rings++
	o.shapes = append(o.shapes, shape{kind: shapeDisc, start: start, end: len(o.points), rings: rings})
}

func appendRing(o *outline, c Vec2, r float64) {
	for i := 0; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		sin, cos := math.Sincos(a)
		o.points = append(o.points, Vec2{c.X + cos*r, c.Y + sin*r})
	}
}

// outlineCapsule builds a rounded bar: two half circles joined by straight
// sides. The caps never exceed half the length.
func outlineCapsule(o *outline, cmd *DrawCommand) {
	if cmd.Length <= 0 || cmd.Thickness <= 0 {
		return
	}
	r := min(cmd.Thickness, cmd.Length) / 2
	half := cmd.Length/2 - r
	axis := Vec2{1, 0}.Rotated(cmd.Rotation)
	side := axis.Perp()
	start := len(o.points)
	for _, end := range [2]float64{1, -1} {
		c := cmd.Center.Add(axis.Scale(half * end))
		for i := 0; i <= capsuleArcSteps; i++ {
			a := -math.Pi/2 + math.Pi*float64(i)/capsuleArcSteps
			sin, cos := math.Sincos(a)
			off := axis.Scale(cos * r * end).Add(side.Scale(sin * r * end))
			o.points = append(o.points, c.Add(off))
		}
	}
	o.shapes = append(o.shapes, shape{kind: shapeFan, start: start, end: len(o.points)})
}

// --- Triangles ---

func (t *Tessellator) appendShape(cmd *DrawCommand, s shape) {
	pts := t.out.points[s.start:s.end]
	base := uint32(len(t.mesh.Vertices))
	for _, p := range pts {
		t.mesh.Vertices = append(t.mesh.Vertices, premultipliedVertex(p, paintAt(cmd, p), cmd.Opacity))
	}
	switch s.kind {
	case shapeStrip:
		n := uint32(len(pts) / 2)
		for i := uint32(0); i+1 < n; i++ {
			v := base + i*2
			t.mesh.Indices = append(t.mesh.Indices, v, v+1, v+2, v+1, v+3, v+2)
		}
	case shapeFan:
		for i := uint32(1); i+1 < uint32(len(pts)); i++ {
			t.mesh.Indices = append(t.mesh.Indices, base, base+i, base+i+1)
		}
	case shapeDisc:
		const n = ellipseSegments
		center := base
		ring := func(k, i int) uint32 { return base + 1 + uint32(k*n+i%n) }
		for i := 0; i < n; i++ {
			t.mesh.Indices = append(t.mesh.Indices, center, ring(0, i), ring(0, i+1))
		}
		for k := 1; k < s.rings; k++ {
			for i := 0; i < n; i++ {
				a, b := ring(k-1, i), ring(k-1, i+1)
				c, d := ring(k, i), ring(k, i+1)
				t.mesh.Indices = append(t.mesh.Indices, a, c, b, b, c, d)
			}
		}
	}
}

func premultipliedVertex(p Vec2, c Color, opacity float64) Vertex {
	a := clamp01(c.A * opacity)
	return Vertex{
		X: float32(p.X), Y: float32(p.Y),
		R: float32(c.R * a), G: float32(c.G * a), B: float32(c.B * a), A: float32(a),
	}
}

// paintAt returns the straight-alpha color of cmd at p.
func paintAt(cmd *DrawCommand, p Vec2) Color {
	if cmd.Gradient == nil {
		return cmd.Color
	}
	return cmd.Gradient.ColorAt(p)
}

// ColorAt evaluates the gradient at p. Positions outside the gradient take
// the nearest end stop.
func (g *Gradient) ColorAt(p Vec2) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	var s float64
	switch g.Type {
	case GradientLinear:
		d := g.End.Sub(g.Start)
		ll := d.X*d.X + d.Y*d.Y
		if ll > degenerateLength {
			v := p.Sub(g.Start)
			s = (v.X*d.X + v.Y*d.Y) / ll
		}
	case GradientRadial:
		if g.Radius > 0 {
			s = p.Sub(g.Center).Len() / g.Radius
		}
	}
	return g.at(clamp01(s))
}

func (g *Gradient) at(s float64) Color {
	stops := g.Stops
	if s <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if s <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (s-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
