package glade

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

var testProj = Projection{TileW: 64, TileH: 32}

func TestWorldToScreenOrigin(t *testing.T) {
	// Grid origin with a centered camera lands on the canvas center.
	cam := CameraState{X: 0, Y: 0, Zoom: 1}
	sx, sy := testProj.WorldToScreen(0, 0, cam, 800, 600)
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 300)
}

func TestWorldToScreenKnownValues(t *testing.T) {
	cam := CameraState{X: 10, Y: -20, Zoom: 2}
	// x = (3-1)*32*2 + 400 + 10*2 = 128 + 400 + 20 = 548
	// y = (3+1)*16*2 + 300 - 20*2 = 128 + 300 - 40 = 388
	sx, sy := testProj.WorldToScreen(3, 1, cam, 800, 600)
	assertNear(t, "sx", sx, 548)
	assertNear(t, "sy", sy, 388)
}

func TestWorldToScreenDiamondAxes(t *testing.T) {
	// Moving along +gridX goes right and down; along +gridY goes left and down.
	cam := CameraState{Zoom: 1}
	ox, oy := testProj.WorldToScreen(0, 0, cam, 800, 600)
	x1, y1 := testProj.WorldToScreen(1, 0, cam, 800, 600)
	x2, y2 := testProj.WorldToScreen(0, 1, cam, 800, 600)

	if x1 <= ox || y1 <= oy {
		t.Errorf("+gridX should move right+down: (%v,%v) -> (%v,%v)", ox, oy, x1, y1)
	}
	if x2 >= ox || y2 <= oy {
		t.Errorf("+gridY should move left+down: (%v,%v) -> (%v,%v)", ox, oy, x2, y2)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cameras := []CameraState{
		{X: 0, Y: 0, Zoom: 1},
		{X: 120, Y: -45, Zoom: 1},
		{X: -300.5, Y: 999.25, Zoom: 0.25},
		{X: 17, Y: 3, Zoom: 3.75},
		{X: 0.001, Y: -0.001, Zoom: 0.01},
	}
	points := []GridPos{
		{0, 0}, {1, 1}, {-5, 3}, {42.5, -17.25}, {1000, 1000}, {-0.5, 0.5},
	}
	for _, cam := range cameras {
		for _, p := range points {
			sx, sy := testProj.WorldToScreen(p.X, p.Y, cam, 1280, 720)
			gx, gy := testProj.ScreenToWorld(sx, sy, cam, 1280, 720)
			if !approxEqual(gx, p.X, 1e-6) || !approxEqual(gy, p.Y, 1e-6) {
				t.Errorf("roundtrip cam=%+v p=%+v: got (%v, %v)", cam, p, gx, gy)
			}
		}
	}
}

func TestScreenToWorldRoundtripFromScreen(t *testing.T) {
	// Inverse direction: screen -> world -> screen.
	cam := CameraState{X: -80, Y: 40, Zoom: 1.5}
	for _, pt := range []Vec2{{0, 0}, {640, 360}, {1279, 719}, {-50, 900}} {
		gx, gy := testProj.ScreenToWorld(pt.X, pt.Y, cam, 1280, 720)
		sx, sy := testProj.WorldToScreen(gx, gy, cam, 1280, 720)
		if !approxEqual(sx, pt.X, 1e-6) || !approxEqual(sy, pt.Y, 1e-6) {
			t.Errorf("roundtrip screen (%v, %v): got (%v, %v)", pt.X, pt.Y, sx, sy)
		}
	}
}

func TestIsInViewport(t *testing.T) {
	const w, h, m = 800, 600, 100
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 400, 300, true},
		{"inside margin left", -99, 300, true},
		{"outside margin left", -101, 300, false},
		{"inside margin right", 899, 300, true},
		{"outside margin right", 901, 300, false},
		{"inside margin top", 400, -99, true},
		{"outside margin top", 400, -101, false},
		{"inside margin bottom", 400, 699, true},
		{"outside margin bottom", 400, 701, false},
		{"on expanded edge", -100, 700, true},
		{"both axes out", -200, -200, false},
	}
	for _, tt := range tests {
		if got := IsInViewport(tt.x, tt.y, w, h, m); got != tt.want {
			t.Errorf("%s: IsInViewport(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestIsInViewportZeroMargin(t *testing.T) {
	if !IsInViewport(0, 0, 800, 600, 0) {
		t.Error("origin should be in viewport with zero margin")
	}
	if IsInViewport(-0.5, 0, 800, 600, 0) {
		t.Error("point left of canvas should be out with zero margin")
	}
}

func BenchmarkWorldToScreen(b *testing.B) {
	b.ReportAllocs()
	cam := CameraState{X: 12, Y: -9, Zoom: 1.5}
	var sx, sy float64
	for i := 0; i < b.N; i++ {
		sx, sy = testProj.WorldToScreen(float64(i%100), float64(i%77), cam, 1280, 720)
	}
	_, _ = sx, sy
}
