package glade

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the view into the world plane: a world-space offset plus a
// uniform zoom. Hosts may set X, Y, and Zoom directly (drag-to-pan, wheel
// zoom) or animate position with ScrollTo.
type Camera struct {
	// X and Y are the world-space pan offset applied during projection.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	// Always clamped to [MinZoom, MaxZoom].
	Zoom float64
	// MinZoom and MaxZoom bound Zoom. Defaults: 0.25 and 4.
	MinZoom, MaxZoom float64

	// BoundsEnabled clamps the pan offset so it stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the pan offset is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a Camera with default zoom limits at the origin.
func NewCamera() *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
	}
}

// State returns the camera as a read-only projection input.
func (c *Camera) State() CameraState {
	return CameraState{X: c.X, Y: c.Y, Zoom: c.Zoom}
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(z, c.MaxZoom))
}

// ZoomBy multiplies the current zoom by factor, clamped to the zoom limits.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ScrollTo animates the camera to the given pan offset over duration seconds.
// Starting a new scroll cancels any scroll in progress.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables pan clamping to the given world-space rectangle.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables pan clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the pan offset into Bounds. Call this
// after modifying X/Y directly (e.g. in a drag callback) to prevent a single
// frame outside the bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Update advances the scroll animation and applies bounds clamping. Called
// once per tick by the world.
func (c *Camera) Update(dt float32) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.Zoom < c.MinZoom || c.Zoom > c.MaxZoom {
		c.SetZoom(c.Zoom)
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the pan offset to Bounds. If the bounds are
// degenerate on an axis, the offset centers on that axis instead.
func (c *Camera) clampToBounds() {
	minX := c.Bounds.X
	maxX := c.Bounds.X + c.Bounds.Width
	minY := c.Bounds.Y
	maxY := c.Bounds.Y + c.Bounds.Height

	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}
