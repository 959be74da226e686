package dandelion

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Rasterizer draws command lists onto ebiten images. All commands of a frame
// go out in a single DrawTriangles32 call; triangles keep command order, so
// later commands paint over earlier ones.
type Rasterizer struct {
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string
	// AntiAlias smooths triangle edges at some extra GPU cost.
	AntiAlias bool

	tess  *Tessellator
	verts []ebiten.Vertex

	screenshotQueue []string
}

// NewRasterizer creates a rasterizer with anti-aliasing enabled.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		ScreenshotDir: "screenshots",
		AntiAlias:     true,
		tess:          NewTessellator(),
	}
}

// Submit tessellates cmds and draws them onto target, then flushes any
// queued screenshots of target.
func (r *Rasterizer) Submit(target *ebiten.Image, cmds []DrawCommand) {
	mesh := r.tess.Tessellate(cmds)
	if len(mesh.Indices) > 0 {
		r.verts = appendEbitenVertices(r.verts[:0], mesh.Vertices)

		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		op.AntiAlias = r.AntiAlias
		target.DrawTriangles32(r.verts, mesh.Indices, ensureWhitePixel(), &op)
	}
	r.flushScreenshots(target)
}

// appendEbitenVertices converts tessellated vertices for the white pixel.
func appendEbitenVertices(dst []ebiten.Vertex, src []Vertex) []ebiten.Vertex {
	for i := range src {
		v := &src[i]
		dst = append(dst, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
	}
	return dst
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily created 1x1 white image used as the
// source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// ToRGBA converts a straight-alpha color to a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
