package glade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Ripple is one expanding feedback ring at a fixed screen position. The
// renderer receives a value snapshot; live state stays in the pool.
type Ripple struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

const (
	maxRipples        = 16
	rippleDuration    = 0.6
	rippleStartRadius = 4.0
	rippleMaxRadius   = 52.0
	rippleStartAlpha  = 0.85
)

type rippleState struct {
	x, y   float64
	radius *gween.Tween
	alpha  *gween.Tween
	curR   float32
	curA   float32
}

// rippleSystem runs a fixed-capacity pool of live ripples. Expired entries
// are swap-removed, so iteration order is not chronological.
type rippleSystem struct {
	pool []rippleState
	out  []Ripple
}

func newRippleSystem() *rippleSystem {
	return &rippleSystem{
		pool: make([]rippleState, 0, maxRipples),
		out:  make([]Ripple, 0, maxRipples),
	}
}

// Trigger starts a ripple at screen coordinates. A full pool drops its
// front entry to make room; interaction feedback must never be refused.
func (r *rippleSystem) Trigger(x, y float64) {
	if len(r.pool) >= maxRipples {
		r.pool = append(r.pool[:0], r.pool[1:]...)
	}
	r.pool = append(r.pool, rippleState{
		x:      x,
		y:      y,
		radius: gween.New(rippleStartRadius, rippleMaxRadius, rippleDuration, ease.OutQuad),
		alpha:  gween.New(rippleStartAlpha, 0, rippleDuration, ease.Linear),
		curR:   rippleStartRadius,
		curA:   rippleStartAlpha,
	})
}

// Update advances every ripple by dt seconds and swap-removes the expired.
func (r *rippleSystem) Update(dt float32) {
	for i := 0; i < len(r.pool); {
		s := &r.pool[i]
		cr, done := s.radius.Update(dt)
		ca, _ := s.alpha.Update(dt)
		if done {
			last := len(r.pool) - 1
			r.pool[i] = r.pool[last]
			r.pool = r.pool[:last]
			continue
		}
		s.curR = cr
		s.curA = ca
		i++
	}
}

// Snapshot returns the live ripples as plain values. The slice is reused
// across frames.
func (r *rippleSystem) Snapshot() []Ripple {
	r.out = r.out[:0]
	for i := range r.pool {
		s := &r.pool[i]
		r.out = append(r.out, Ripple{
			X:      s.x,
			Y:      s.y,
			Radius: float64(s.curR),
			Alpha:  float64(s.curA),
		})
	}
	return r.out
}

func (r *rippleSystem) Len() int {
	return len(r.pool)
}
