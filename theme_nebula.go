package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	nebulaTop    = Color{0.04, 0.03, 0.10, 1}
	nebulaBottom = Color{0.10, 0.05, 0.16, 1}
	nebulaCloudA = Color{0.55, 0.20, 0.60, 1}
	nebulaCloudB = Color{0.15, 0.45, 0.60, 1}
	nebulaStar   = Color{0.95, 0.95, 1.00, 1}
)

var moteTints = [2]Color{
	{0.45, 0.85, 0.95, 1},
	{0.90, 0.50, 0.95, 1},
}

const (
	nebulaStars     = 140
	nebulaMoteCount = 20
)

var (
	nebulaStarDepth = Range{Min: 0.05, Max: 0.15}
	nebulaMoteSpeed = Range{Min: 3, Max: 8}
)

// newNebulaTheme layers a space backdrop over the city bundle: the
// background and particle roles are replaced, everything else including
// the blocks topology carries over through the merge.
func newNebulaTheme(w *World) RendererSet {
	base := newCityTheme(w)
	return MergeRendererSets(base, RendererSet{
		Background: &nebulaBackground{},
		Particle:   &nebulaMotes{},
	})
}

type nebulaBackground struct {
	painter canvasPainter
}

func (n *nebulaBackground) DrawBackground(dst *ebiten.Image, view *View, t float64) {
	n.painter.vgradient(0, 0, view.Width, view.Height, nebulaTop, nebulaBottom)

	// Two slow gas blobs behind the starfield.
	cx := view.Width*0.30 + 40*math.Sin(t*0.05)
	n.painter.ellipse(cx, view.Height*0.35, view.Width*0.28, view.Height*0.20, withAlpha(nebulaCloudA, 0.06))
	cx = view.Width*0.72 + 30*math.Sin(t*0.04+2)
	n.painter.ellipse(cx, view.Height*0.60, view.Width*0.24, view.Height*0.18, withAlpha(nebulaCloudB, 0.06))

	// Stars scroll against the camera at a fraction of its speed, wrapped
	// to the screen, so the backdrop reads as distant.
	cam := view.Camera
	for i := 0; i < nebulaStars; i++ {
		h := PositionHash(int64(i), 0x6E)
		depth := nebulaStarDepth.Lerp(HashFloat(h >> 23))
		x := math.Mod(HashFloat(h)*view.Width+cam.X*cam.Zoom*depth, view.Width)
		if x < 0 {
			x += view.Width
		}
		y := math.Mod(HashFloat(h>>11)*view.Height+cam.Y*cam.Zoom*depth, view.Height)
		if y < 0 {
			y += view.Height
		}
		tw := 0.35 + 0.55*math.Abs(math.Sin(t*(0.6+HashFloat(h>>31))+float64(i)))
		size := 1.0
		if HashFloat(h>>37) > 0.85 {
			size = 2
		}
		n.painter.rect(x, y, size, size, withAlpha(nebulaStar, tw))
	}
	n.painter.flush(dst)
}

type nebulaMotes struct {
	painter canvasPainter
}

func (n *nebulaMotes) DrawParticles(dst *ebiten.Image, view *View, t float64) {
	for i := 0; i < nebulaMoteCount; i++ {
		h := PositionHash(int64(i), 0x4D)
		p1 := HashFloat(h) * 2 * math.Pi
		speed := nebulaMoteSpeed.Lerp(HashFloat(h >> 9))
		x := math.Mod(HashFloat(h>>17)*view.Width+t*speed, view.Width+24) - 12
		y := HashFloat(h>>27)*view.Height + 14*math.Sin(t*0.25+p1)
		r := 2 + 2.5*HashFloat(h>>33)
		a := clamp01(0.25 + 0.2*math.Sin(t*0.8+p1*2))
		tint := moteTints[hashPick(h, len(moteTints))]
		n.painter.circle(x, y, r*2.2, withAlpha(tint, a*0.25))
		n.painter.circle(x, y, r, withAlpha(tint, a))
	}
	n.painter.flush(dst)
}
