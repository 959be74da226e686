package dandelion

import (
	"math"
	"time"
)

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandStroke  CommandType = iota // stroke Segments with Width
	CommandEllipse                    // fill a circle of Radius at Center
	CommandCapsule                    // fill a rounded bar centered at Center
)

// Layer is the depth slot a command was emitted into. Commands are returned
// already ordered by layer.
type Layer uint8

const (
	LayerStem   Layer = iota // stem and its overlays
	LayerBack                // attached seeds behind the core
	LayerCore                // the core disc
	LayerFront               // attached seeds in front of the core
	LayerFlight              // detached seeds, always on top
)

// Part identifies which piece of the flower a command draws.
type Part uint8

const (
	PartStem Part = iota
	PartStemPulse
	PartCore
	PartCorePulse
	PartBeak
	PartAchene
	PartFilaments
	PartCrown
	PartCrownPulse
)

// Segment is a straight line, or a quadratic Bézier when Curve is set.
type Segment struct {
	From, Control, To Vec2
	Curve             bool
}

// GradientType selects how a Gradient is laid out.
type GradientType uint8

const (
	GradientLinear GradientType = iota // from Start to End
	GradientRadial                     // from Center out to Radius
)

// GradientStop is one color stop; Offset is in [0, 1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient replaces a command's solid Color.
type Gradient struct {
	Type       GradientType
	Start, End Vec2
	Center     Vec2
	Radius     float64
	Stops      []GradientStop
}

// DrawCommand is a single drawing instruction in canvas coordinates. The
// canvas spans the visible area plus the top overflow band above it.
type DrawCommand struct {
	Type   CommandType
	Layer  Layer
	Part   Part
	SeedID int // -1 for stem and core commands

	// Stroke fields. Segments and Dash alias renderer buffers and are only
	// valid until the next Draw on the same Renderer.
	Segments []Segment
	Width    float64
	Dash     []float64

	// Fill fields.
	Center    Vec2
	Radius    float64 // CommandEllipse
	Length    float64 // CommandCapsule, along Rotation
	Thickness float64 // CommandCapsule, across Rotation
	Rotation  float64

	// Color is straight-alpha; Opacity multiplies its alpha.
	Color    Color
	Opacity  float64
	Gradient *Gradient
}

// Alpha returns the command's effective alpha.
func (c *DrawCommand) Alpha() float64 {
	return c.Color.A * c.Opacity
}

// Frame collects everything the renderer needs for one frame.
type Frame struct {
	Simulation   *Simulation
	Now          float64
	WindStrength float64 // already scaled by the style's wind multiplier
	Style        Style
	Theme        Theme
	Anchors      Anchors
	Canvas       Size    // visible area
	TopOverflow  float64 // extra space above the visible area
}

// Layout is the frame's head geometry.
type Layout struct {
	Canvas      Size
	TopOverflow float64
	HeadRadius  float64
	StemBase    Vec2
	RestHead    Vec2
	HeadCenter  Vec2
}

// Layout proportions of the visible area.
const (
	headRadiusShare = 0.2
	stemBaseY       = 0.92
	restHeadY       = 0.34
	headBobRate     = 0.35
	headBobPhase    = 1.1
	headBobAmount   = 0.03
)

// ComputeLayout places the stem and head for a canvas. The visible area
// starts topOverflow units below the top of the drawing space, leaving room
// for seeds to fly out upward.
func ComputeLayout(canvas Size, topOverflow, stemAngle, now float64) Layout {
	top := max(0, topOverflow)
	minSide := math.Min(canvas.Width, canvas.Height)
	r := minSide * headRadiusShare
	base := Vec2{canvas.Width * 0.5, top + canvas.Height*stemBaseY}
	rest := Vec2{canvas.Width * 0.5, top + canvas.Height*restHeadY}
	bob := math.Sin(now*headBobRate+headBobPhase) * r * headBobAmount
	head := base.Add(rest.Sub(base).Rotated(stemAngle)).Add(Vec2{0, bob})
	return Layout{
		Canvas:      canvas,
		TopOverflow: top,
		HeadRadius:  r,
		StemBase:    base,
		RestHead:    rest,
		HeadCenter:  head,
	}
}

const defaultCommandCap = 1024

// minVisibleLength is the size below which a beak or pappus is skipped.
const minVisibleLength = 0.01

// Renderer turns a simulation frame into draw commands. It keeps its buffers
// between frames, so the returned slice is only valid until the next Draw.
// A Renderer only reads the simulation.
type Renderer struct {
	commands []DrawCommand
	segments []Segment
	dashes   []float64

	debug bool
	stats renderStats
}

// NewRenderer creates a renderer with preallocated buffers.
func NewRenderer() *Renderer {
	return &Renderer{
		commands: make([]DrawCommand, 0, defaultCommandCap),
		segments: make([]Segment, 0, defaultCommandCap*4),
	}
}

// DrawFrame renders f with a throwaway Renderer. The result owns its memory.
func DrawFrame(f Frame) []DrawCommand {
	return NewRenderer().Draw(f)
}

// frameContext is the per-frame state shared by every emitted seed.
type frameContext struct {
	layout      Layout
	t           float64
	globalAngle float64
	wind        float64
	style       StyleConfig
	theme       Theme
	duration    float64
	restore     float64

	stemDash     []float64
	beakDash     []float64
	filamentDash []float64
}

// Draw emits the frame's commands in paint order: stem, back seeds, core,
// front seeds, then every detached seed.
func (r *Renderer) Draw(f Frame) []DrawCommand {
	r.commands = r.commands[:0]
	r.segments = r.segments[:0]
	r.dashes = r.dashes[:0]
	r.stats = renderStats{}

	sim := f.Simulation
	if sim == nil || !(f.Canvas.Width > 0) || !(f.Canvas.Height > 0) {
		return r.commands
	}

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	wind := f.WindStrength
	if !finite(wind) || wind < 0 {
		wind = 0
	}
	style := f.Style.Config()
	layout := ComputeLayout(f.Canvas, f.TopOverflow, sim.StemAngle(), f.Now)
	duration := style.RestoreDuration()
	ctx := frameContext{
		layout:      layout,
		t:           f.Now,
		globalAngle: sim.StemAngle() * 0.4,
		wind:        wind,
		style:       style,
		theme:       f.Theme,
		duration:    duration,
		restore:     RestoreProgress(f.Now, f.Anchors, duration),
	}
	ctx.stemDash = r.scaledDash(style.StemDash, layout.HeadRadius)
	ctx.beakDash = r.scaledDash(style.BeakDash, layout.HeadRadius)
	ctx.filamentDash = r.scaledDash(style.FilamentDash, layout.HeadRadius)

	r.emitStem(&ctx)

	seeds := sim.Seeds()
	detached := f.Anchors.DetachedSeedTimes
	for _, i := range sim.BackIndices() {
		if _, ok := detached[seeds[i].ID]; ok {
			continue
		}
		r.emitSeed(&ctx, &seeds[i], f.Anchors, LayerBack)
	}

	r.emitCore(&ctx)

	for _, i := range sim.FrontIndices() {
		if _, ok := detached[seeds[i].ID]; ok {
			continue
		}
		r.emitSeed(&ctx, &seeds[i], f.Anchors, LayerFront)
	}

	if len(detached) > 0 {
		for i := range seeds {
			if _, ok := detached[seeds[i].ID]; ok {
				r.emitSeed(&ctx, &seeds[i], f.Anchors, LayerFlight)
			}
		}
	}

	if r.debug {
		r.stats.emitTime = time.Since(t0)
		r.stats.commandCount = len(r.commands)
		r.stats.segmentCount = len(r.segments)
		r.debugLog()
	}
	return r.commands
}

// scaledDash copies pattern scaled by unit into the dash buffer.
func (r *Renderer) scaledDash(pattern []float64, unit float64) []float64 {
	if len(pattern) == 0 {
		return nil
	}
	start := len(r.dashes)
	for _, d := range pattern {
		r.dashes = append(r.dashes, d*unit)
	}
	return r.dashes[start:len(r.dashes):len(r.dashes)]
}

// pushSegments returns the segments appended since start as a capped slice.
func (r *Renderer) pushSegments(start int) []Segment {
	end := len(r.segments)
	return r.segments[start:end:end]
}

// --- Stem and core ---

func (r *Renderer) emitStem(ctx *frameContext) {
	l := ctx.layout
	stem := l.HeadCenter.Sub(l.StemBase)
	offset := stem.Perp().Normalized().Scale(stem.Len() * 0.18)
	control := l.StemBase.Add(stem.Scale(0.5)).Add(offset)
	width := math.Max(1.2, l.HeadRadius*0.08)

	start := len(r.segments)
	r.segments = append(r.segments, Segment{From: l.StemBase, Control: control, To: l.HeadCenter, Curve: true})
	segs := r.pushSegments(start)

	r.commands = append(r.commands, DrawCommand{
		Type:     CommandStroke,
		Layer:    LayerStem,
		Part:     PartStem,
		SeedID:   -1,
		Segments: segs,
		Width:    width,
		Dash:     ctx.stemDash,
		Color:    ctx.theme.StemBase,
		Opacity:  1,
		Gradient: &Gradient{
			Type:  GradientLinear,
			Start: l.StemBase,
			End:   l.HeadCenter,
			Stops: []GradientStop{
				{Offset: 0, Color: ctx.theme.StemBase},
				{Offset: 1, Color: ctx.theme.StemTip},
			},
		},
	})

	if ctx.style.Pulse {
		pulse := 0.75 + 0.25*math.Sin(ctx.t*0.9)
		r.commands = append(r.commands, DrawCommand{
			Type:     CommandStroke,
			Layer:    LayerStem,
			Part:     PartStemPulse,
			SeedID:   -1,
			Segments: segs,
			Width:    width * 2.4,
			Color:    ctx.theme.StemTip.WithAlpha(0.16),
			Opacity:  pulse,
		})
	}
}

func (r *Renderer) emitCore(ctx *frameContext) {
	l := ctx.layout
	th := ctx.theme
	r.commands = append(r.commands, DrawCommand{
		Type:    CommandEllipse,
		Layer:   LayerCore,
		Part:    PartCore,
		SeedID:  -1,
		Center:  l.HeadCenter,
		Radius:  l.HeadRadius * 0.58,
		Color:   th.Primary,
		Opacity: 1,
		Gradient: &Gradient{
			Type:   GradientRadial,
			Center: l.HeadCenter,
			Radius: l.HeadRadius * 0.9,
			Stops: []GradientStop{
				{Offset: 0, Color: th.Accent.WithAlpha(0.95)},
				{Offset: 0.55, Color: th.Primary.WithAlpha(0.75)},
				{Offset: 1, Color: th.Subtle.WithAlpha(0.9)},
			},
		},
	})

	if ctx.style.Pulse {
		breathe := math.Sin(ctx.t * 0.7)
		r.commands = append(r.commands, DrawCommand{
			Type:    CommandEllipse,
			Layer:   LayerCore,
			Part:    PartCorePulse,
			SeedID:  -1,
			Center:  l.HeadCenter,
			Radius:  l.HeadRadius * 0.58 * (1.08 + 0.04*breathe),
			Color:   th.Primary.WithAlpha(0.12),
			Opacity: 0.8 + 0.2*breathe,
		})
	}
}

// --- Seeds ---

// seedGeometry is the placed geometry of one seed for a frame.
type seedGeometry struct {
	direction    Vec2
	anchor       Vec2
	pappusCenter Vec2
	beakLength   float64
	pappusRadius float64
	depthFactor  float64
	depthScale   float64
	windBend     Vec2
}

// placeSeed computes where seed sits this frame.
func placeSeed(ctx *frameContext, seed *Seed, anim SeedAnimation) seedGeometry {
	l := ctx.layout
	r := l.HeadRadius
	w, h := l.Canvas.Width, l.Canvas.Height
	t := ctx.t

	var g seedGeometry
	g.depthFactor = (seed.Depth + 1) * 0.5
	g.depthScale = 0.78 + g.depthFactor*0.32

	localSway := math.Sin(t*seed.SwayFrequency+seed.SwayPhase) * 0.07
	g.direction = seed.Orientation.Rotated(ctx.globalAngle).Rotated(seed.Angle + localSway)
	perp := g.direction.Perp()

	base := l.HeadCenter.
		Add(seed.Projection.Scale(r * (1 - seed.AnchorInset))).
		Add(seed.AnchorJitter.Scale(r))

	wind := WindVector(seed.Projection, t, ctx.wind)
	g.windBend = wind.Scale(r * 0.08)

	var offset Vec2
	det := anim.Detachment
	if det.Detached && !anim.Restoring {
		ease := det.Progress
		flight := math.Min(1, det.Elapsed/seed.FlightDuration)
		flightEase := EaseOutCubic(flight)

		flightOffset := Vec2{
			X: w * seed.FlightDrift * flightEase,
			Y: -(h*seed.FlightLift + h*0.15) * flightEase,
		}
		windOffset := wind.Scale(h * 0.08 * flight)
		flutter := perp.Scale(math.Sin(t*1.2+seed.DetachmentPhase) * w * 0.015 * flight)
		drift := g.direction.Scale(r * seed.DetachmentDistance * ease).
			Add(perp.Scale(math.Sin(t*1.1+seed.DetachmentPhase) * r * 0.02 * ease))

		offset = drift.Add(flightOffset).Add(windOffset).Add(flutter)
	}

	g.anchor = base.Add(offset)
	g.beakLength = r * seed.BeakLength * g.depthScale * anim.BeakScale
	g.pappusRadius = r * seed.PappusRadius * g.depthScale * anim.PappusScale
	g.pappusCenter = g.anchor.Add(g.direction.Scale(g.beakLength))
	return g
}

// emitSeed resolves and emits one seed into layer.
func (r *Renderer) emitSeed(ctx *frameContext, seed *Seed, anchors Anchors, layer Layer) {
	anim := ResolveSeedAnimation(seed, ctx.t, anchors, ctx.restore, ctx.duration)
	if !anim.Visible() {
		r.stats.seedsCulled++
		return
	}
	r.stats.seedsDrawn++

	g := placeSeed(ctx, seed, anim)
	th := ctx.theme
	radius := ctx.layout.HeadRadius
	opacity := (0.35 + g.depthFactor*0.65) * anim.Opacity

	if g.beakLength >= minVisibleLength {
		start := len(r.segments)
		r.segments = append(r.segments, Segment{From: g.anchor, To: g.pappusCenter})
		r.commands = append(r.commands, DrawCommand{
			Type:     CommandStroke,
			Layer:    layer,
			Part:     PartBeak,
			SeedID:   seed.ID,
			Segments: r.pushSegments(start),
			Width:    math.Max(0.6, radius*0.025),
			Dash:     ctx.beakDash,
			Color:    th.Accent.WithAlpha(0.55),
			Opacity:  opacity,
		})

		r.commands = append(r.commands, DrawCommand{
			Type:      CommandCapsule,
			Layer:     layer,
			Part:      PartAchene,
			SeedID:    seed.ID,
			Center:    g.anchor.Add(g.direction.Scale(radius * 0.04 * anim.BeakScale)),
			Length:    radius * 0.14 * g.depthScale * anim.BeakScale,
			Thickness: radius * 0.055 * g.depthScale * anim.BeakScale,
			Rotation:  g.direction.Angle(),
			Color:     th.Accent.WithAlpha(0.75),
			Opacity:   opacity,
		})
	}

	if g.pappusRadius < minVisibleLength {
		return
	}

	axisA := g.direction.Perp()
	axisB := g.direction.Scale(0.25 + math.Abs(seed.Depth)*0.75)
	start := len(r.segments)
	for i, angle := range seed.FilamentAngles {
		flutter := math.Sin(ctx.t*1.6+seed.FilamentPhases[i]) * 0.08
		sin, cos := math.Sincos(angle + flutter)
		dir := axisA.Scale(cos).Add(axisB.Scale(sin)).Normalized()
		length := g.pappusRadius * seed.FilamentLengths[i]
		r.segments = append(r.segments, Segment{
			From:    g.pappusCenter,
			Control: g.pappusCenter.Add(dir.Scale(length * 0.6)).Add(g.windBend),
			To:      g.pappusCenter.Add(dir.Scale(length)),
			Curve:   true,
		})
	}
	r.commands = append(r.commands, DrawCommand{
		Type:     CommandStroke,
		Layer:    layer,
		Part:     PartFilaments,
		SeedID:   seed.ID,
		Segments: r.pushSegments(start),
		Width:    math.Max(0.4, radius*0.012),
		Dash:     ctx.filamentDash,
		Color:    th.Pappus.WithAlpha(0.65 + g.depthFactor*0.3),
		Opacity:  opacity,
	})

	if ctx.style.Pulse {
		r.commands = append(r.commands, DrawCommand{
			Type:    CommandEllipse,
			Layer:   layer,
			Part:    PartCrownPulse,
			SeedID:  seed.ID,
			Center:  g.pappusCenter,
			Radius:  g.pappusRadius * (0.55 + 0.1*math.Sin(ctx.t*1.3+seed.SwayPhase)),
			Color:   th.Pappus.WithAlpha(0.07),
			Opacity: opacity,
		})
	}

	r.commands = append(r.commands, DrawCommand{
		Type:    CommandEllipse,
		Layer:   layer,
		Part:    PartCrown,
		SeedID:  seed.ID,
		Center:  g.pappusCenter,
		Radius:  g.pappusRadius * 0.08,
		Color:   th.Pappus.WithAlpha(0.85),
		Opacity: opacity,
	})
}
