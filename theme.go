package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// registerBuiltinThemes installs the stock renderer bundles into a fresh
// registry. Hosts can re-Register any name to replace a stock theme.
func registerBuiltinThemes(reg *RendererRegistry) {
	reg.Register("city", newCityTheme)
	reg.Register("village", newVillageTheme)
	reg.Register("nebula", newNebulaTheme)
}

func clampLevel(l int) int {
	return min(max(l, MinLevel), MaxLevel)
}

// maxLatticeSpan caps how many grid lines one axis may draw. Beyond this
// the lattice is subpixel noise, so it is skipped entirely.
const maxLatticeSpan = 220

// latticeBounds returns the whole-cell world rectangle covered by the
// viewport, padded by one cell. ok is false when the grid would be too
// dense to read.
func latticeBounds(view *View) (x0, y0, x1, y1 int, ok bool) {
	cam := view.Camera
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	corners := [4][2]float64{
		{0, 0}, {view.Width, 0}, {0, view.Height}, {view.Width, view.Height},
	}
	for _, c := range corners {
		gx, gy := view.Proj.ScreenToWorld(c[0], c[1], cam, view.Width, view.Height)
		minX = math.Min(minX, gx)
		minY = math.Min(minY, gy)
		maxX = math.Max(maxX, gx)
		maxY = math.Max(maxY, gy)
	}
	x0 = int(math.Floor(minX)) - 1
	y0 = int(math.Floor(minY)) - 1
	x1 = int(math.Ceil(maxX)) + 1
	y1 = int(math.Ceil(maxY)) + 1
	if x1-x0 > maxLatticeSpan || y1-y0 > maxLatticeSpan {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}

// emitLattice queues the visible grid lines on the painter. The caller
// flushes.
func emitLattice(p *canvasPainter, view *View, c Color) {
	x0, y0, x1, y1, ok := latticeBounds(view)
	if !ok {
		return
	}
	cam := view.Camera
	for gx := x0; gx <= x1; gx++ {
		ax, ay := view.Proj.WorldToScreen(float64(gx), float64(y0), cam, view.Width, view.Height)
		bx, by := view.Proj.WorldToScreen(float64(gx), float64(y1), cam, view.Width, view.Height)
		p.line(ax, ay, bx, by, 1, c)
	}
	for gy := y0; gy <= y1; gy++ {
		ax, ay := view.Proj.WorldToScreen(float64(x0), float64(gy), cam, view.Width, view.Height)
		bx, by := view.Proj.WorldToScreen(float64(x1), float64(gy), cam, view.Width, view.Height)
		p.line(ax, ay, bx, by, 1, c)
	}
}

// blitAnchored draws a cached bitmap so that its logical anchor point
// (ax, ay) lands on the screen point (sx, sy) at the camera zoom. Cached
// bitmaps hold logical coordinates multiplied by the device scale, so the
// pixel scale factor is zoom over dpr.
func blitAnchored(dst, img *ebiten.Image, zoom, dpr, sx, sy, ax, ay float64) {
	var op ebiten.DrawImageOptions
	s := zoom / dpr
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(sx-ax*zoom, sy-ay*zoom)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}

// drawLabel prints an entity label centered under a screen point.
func drawLabel(dst *ebiten.Image, label string, sx, sy float64) {
	if label == "" {
		return
	}
	ebitenutil.DebugPrintAt(dst, label, int(sx)-3*len(label), int(sy)+4)
}

// skinImage resolves an optional host-supplied skin. A headless bundle has
// no asset store and always falls through to procedural art.
func skinImage(assets *AssetStore, name string) *ebiten.Image {
	if assets == nil {
		return nil
	}
	return assets.Image(name)
}

// blitSkin draws a host-supplied entity bitmap in place of the procedural
// art. Skins follow the cache bitmap convention: the base diamond center
// sits half a tile above the bottom edge.
func blitSkin(dst, img *ebiten.Image, view *View, sx, sy float64) {
	b := img.Bounds()
	blitAnchored(dst, img, view.Camera.Zoom, 1, sx, sy,
		float64(b.Dx())/2, float64(b.Dy())-view.Proj.TileH/2)
}

// DrawPlaceholder paints the stand-in for an entity whose artwork is
// unavailable: a palette-tinted ground diamond with one inset step per
// level. The pipeline uses it when the active set has no entity role, and
// custom renderers can call it instead of leaving a hole in the world.
func DrawPlaceholder(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64) {
	zoom := view.Camera.Zoom
	halfW := view.Proj.TileW / 2 * zoom
	halfH := view.Proj.TileH / 2 * zoom
	pal := EntityPalette(e.StyleSeed)

	var p canvasPainter
	p.diamond(sx, sy, halfW, halfH, shade(pal.Base, 0.6))
	for i := 0; i < clampLevel(e.Level); i++ {
		f := 0.8 - 0.18*float64(i)
		p.diamond(sx, sy-float64(i+1)*halfH*0.28, halfW*f, halfH*f, shade(pal.Base, 1+0.12*float64(i)))
	}
	p.flush(dst)
}
