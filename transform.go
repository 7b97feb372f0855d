package glade

// Projection converts between logical grid coordinates and screen pixels for
// a diamond-isometric plane. TileW and TileH are the on-screen size of one
// grid cell at zoom 1.
type Projection struct {
	TileW, TileH float64
}

// WorldToScreen projects a grid position to screen pixels for the given
// camera and canvas size:
//
//	x = (gx - gy) * TileW/2 * zoom + w/2 + cam.X*zoom
//	y = (gx + gy) * TileH/2 * zoom + h/2 + cam.Y*zoom
func (p Projection) WorldToScreen(gx, gy float64, cam CameraState, w, h float64) (sx, sy float64) {
	z := cam.Zoom
	sx = (gx-gy)*(p.TileW/2)*z + w/2 + cam.X*z
	sy = (gx+gy)*(p.TileH/2)*z + h/2 + cam.Y*z
	return
}

// ScreenToWorld is the exact algebraic inverse of WorldToScreen. The camera
// zoom must be positive; WorldToScreen followed by ScreenToWorld returns the
// original position within floating-point tolerance.
func (p Projection) ScreenToWorld(sx, sy float64, cam CameraState, w, h float64) (gx, gy float64) {
	z := cam.Zoom
	a := (sx - w/2 - cam.X*z) / ((p.TileW / 2) * z)
	b := (sy - h/2 - cam.Y*z) / ((p.TileH / 2) * z)
	gx = (a + b) / 2
	gy = (b - a) / 2
	return
}

// IsInViewport reports whether the screen point lies within the canvas
// expanded by margin on every side. The bounds are closed: points exactly on
// the expanded edge are in. Every per-entity, per-road-cell, and
// per-decoration draw is gated on this before any paint cost is incurred.
func IsInViewport(x, y, w, h, margin float64) bool {
	return x >= -margin && x <= w+margin &&
		y >= -margin && y <= h+margin
}
