package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// canvasPainter accumulates flat-color primitives and submits them as one
// DrawTriangles call against the shared white pixel. Buffers are reused
// across frames and grow to the caller's high-water mark. Each renderer
// owns its painter; callers add shapes for one layer and flush once.
type canvasPainter struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (p *canvasPainter) vertex(x, y float64, c Color) uint16 {
	i := uint16(len(p.verts))
	p.verts = append(p.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	})
	return i
}

// flush draws everything added since the last flush and resets the buffers.
func (p *canvasPainter) flush(dst *ebiten.Image) {
	if len(p.inds) == 0 {
		p.verts = p.verts[:0]
		return
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles(p.verts, p.inds, WhitePixel, &triOp)
	p.verts = p.verts[:0]
	p.inds = p.inds[:0]
}

// convex fan-triangulates a convex polygon around its first point.
func (p *canvasPainter) convex(points []Vec2, c Color) {
	n := len(points)
	if n < 3 {
		return
	}
	hub := p.vertex(points[0].X, points[0].Y, c)
	prev := p.vertex(points[1].X, points[1].Y, c)
	for i := 2; i < n; i++ {
		next := p.vertex(points[i].X, points[i].Y, c)
		p.inds = append(p.inds, hub, prev, next)
		prev = next
	}
}

// tri fills a single triangle.
func (p *canvasPainter) tri(x0, y0, x1, y1, x2, y2 float64, c Color) {
	a := p.vertex(x0, y0, c)
	b := p.vertex(x1, y1, c)
	d := p.vertex(x2, y2, c)
	p.inds = append(p.inds, a, b, d)
}

// quad fills an arbitrary convex quadrilateral given in winding order.
func (p *canvasPainter) quad(x0, y0, x1, y1, x2, y2, x3, y3 float64, c Color) {
	a := p.vertex(x0, y0, c)
	b := p.vertex(x1, y1, c)
	d := p.vertex(x2, y2, c)
	e := p.vertex(x3, y3, c)
	p.inds = append(p.inds, a, b, d, a, d, e)
}

func (p *canvasPainter) rect(x, y, w, h float64, c Color) {
	tl := p.vertex(x, y, c)
	tr := p.vertex(x+w, y, c)
	bl := p.vertex(x, y+h, c)
	br := p.vertex(x+w, y+h, c)
	p.inds = append(p.inds, tl, tr, bl, tr, br, bl)
}

// vgradient fills a rectangle blending from the top color to the bottom.
func (p *canvasPainter) vgradient(x, y, w, h float64, top, bottom Color) {
	tl := p.vertex(x, y, top)
	tr := p.vertex(x+w, y, top)
	bl := p.vertex(x, y+h, bottom)
	br := p.vertex(x+w, y+h, bottom)
	p.inds = append(p.inds, tl, tr, bl, tr, br, bl)
}

// diamond fills the isometric cell diamond centered at (cx, cy).
func (p *canvasPainter) diamond(cx, cy, halfW, halfH float64, c Color) {
	top := p.vertex(cx, cy-halfH, c)
	right := p.vertex(cx+halfW, cy, c)
	bottom := p.vertex(cx, cy+halfH, c)
	left := p.vertex(cx-halfW, cy, c)
	p.inds = append(p.inds, top, right, bottom, top, bottom, left)
}

// line draws a segment of the given thickness as a quad.
func (p *canvasPainter) line(x0, y0, x1, y1, width float64, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return
	}
	// Unit left-perpendicular, scaled to half thickness.
	nx := -dy / ln * width / 2
	ny := dx / ln * width / 2
	a := p.vertex(x0+nx, y0+ny, c)
	b := p.vertex(x1+nx, y1+ny, c)
	d := p.vertex(x0-nx, y0-ny, c)
	e := p.vertex(x1-nx, y1-ny, c)
	p.inds = append(p.inds, a, b, d, b, e, d)
}

// circleSegments picks a tessellation that stays smooth at screen scale.
func circleSegments(r float64) int {
	n := int(r * 0.8)
	return max(10, min(n, 48))
}

func (p *canvasPainter) circle(cx, cy, r float64, c Color) {
	if r <= 0 {
		return
	}
	n := circleSegments(r)
	hub := p.vertex(cx, cy, c)
	first := p.vertex(cx+r, cy, c)
	prev := first
	for i := 1; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		next := p.vertex(cx+math.Cos(a)*r, cy+math.Sin(a)*r, c)
		p.inds = append(p.inds, hub, prev, next)
		prev = next
	}
	p.inds = append(p.inds, hub, prev, first)
}

// ring draws a circle outline of the given stroke width.
func (p *canvasPainter) ring(cx, cy, r, width float64, c Color) {
	if r <= 0 || width <= 0 {
		return
	}
	inner := math.Max(r-width/2, 0)
	outer := r + width/2
	n := circleSegments(outer)
	base := uint16(len(p.verts))
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		cos, sin := math.Cos(a), math.Sin(a)
		p.vertex(cx+cos*outer, cy+sin*outer, c)
		p.vertex(cx+cos*inner, cy+sin*inner, c)
	}
	for i := 0; i < n; i++ {
		o0 := base + uint16(i*2)
		i0 := o0 + 1
		o1 := base + uint16(((i+1)%n)*2)
		i1 := o1 + 1
		p.inds = append(p.inds, o0, i0, o1, i0, i1, o1)
	}
}

// ellipse fills an axis-aligned ellipse, used for shadows and soft blobs.
func (p *canvasPainter) ellipse(cx, cy, rx, ry float64, c Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	n := circleSegments(math.Max(rx, ry))
	hub := p.vertex(cx, cy, c)
	first := p.vertex(cx+rx, cy, c)
	prev := first
	for i := 1; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		next := p.vertex(cx+math.Cos(a)*rx, cy+math.Sin(a)*ry, c)
		p.inds = append(p.inds, hub, prev, next)
		prev = next
	}
	p.inds = append(p.inds, hub, prev, first)
}
