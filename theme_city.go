package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// City theme colors. Entity hues come from EntityPalette; these cover the
// shared environment.
var (
	citySkyDayTop     = Color{0.34, 0.45, 0.60, 1}
	citySkyDayBottom  = Color{0.59, 0.63, 0.67, 1}
	citySkyDuskTop    = Color{0.10, 0.09, 0.20, 1}
	citySkyDuskBottom = Color{0.44, 0.27, 0.29, 1}
	cityAsphalt       = Color{0.21, 0.23, 0.26, 1}
	cityLaneMark      = Color{0.90, 0.90, 0.84, 1}
	cityLampPole      = Color{0.16, 0.17, 0.19, 1}
	cityLampWarm      = Color{1.00, 0.85, 0.55, 1}
	cityBenchWood     = Color{0.45, 0.33, 0.22, 1}
	cityDust          = Color{0.85, 0.82, 0.75, 1}
	cityScaffold      = Color{0.55, 0.42, 0.28, 1}
	cityWindowLit     = Color{1.00, 0.88, 0.60, 1}
	cityRippleTint    = Color{0.95, 0.97, 1.00, 1}
)

const (
	// cityDayCycle is the period in seconds of the background sky swing.
	cityDayCycle  = 75.0
	cityDustCount = 36
)

var cityDustSpeed = Range{Min: 4, Max: 14}

// citySkinNames are the optional per-level asset names checked before the
// procedural building draws.
var citySkinNames = [MaxLevel]string{
	"city/building-1", "city/building-2", "city/building-3", "city/building-4",
}

// cityTheme is the stock blocks-topology look: a day-cycling gradient sky,
// asphalt lattice roads with street furniture, and extruded block buildings
// colored from each entity's style seed. One value serves every role it
// fills in the set.
type cityTheme struct {
	painter canvasPainter
}

func newCityTheme(*World) RendererSet {
	c := &cityTheme{}
	return RendererSet{
		Topology:   TopologyBlocks,
		Background: c,
		Grid:       c,
		Entity:     c,
		Particle:   c,
		Decoration: c,
		Ripple:     c,
	}
}

func (c *cityTheme) DrawBackground(dst *ebiten.Image, view *View, t float64) {
	k := 0.5 + 0.5*math.Sin(t*2*math.Pi/cityDayCycle)
	top := blendLab(citySkyDuskTop, citySkyDayTop, k)
	bottom := blendLab(citySkyDuskBottom, citySkyDayBottom, k)
	c.painter.vgradient(0, 0, view.Width, view.Height, top, bottom)
	c.painter.flush(dst)
}

func (c *cityTheme) DrawGrid(dst *ebiten.Image, view *View, t float64) {
	emitLattice(&c.painter, view, withAlpha(ColorWhite, 0.06))
	c.painter.flush(dst)
}

func (c *cityTheme) DrawEntity(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64, selected bool, t float64) {
	zoom := view.Camera.Zoom
	level := clampLevel(e.Level)
	wallH := float64(level) * view.Proj.TileH / 2
	w := view.Proj.TileW
	h := view.Proj.TileH + wallH
	anchorY := h - view.Proj.TileH/2

	if view.Settings.ShowGlow || selected {
		c.drawGlow(dst, view, e, sx, sy)
	}

	if img := skinImage(view.Assets, citySkinNames[level-1]); img != nil {
		blitSkin(dst, img, view, sx, sy)
	} else if e.ConstructionProgress < 1 {
		// Progress moves every frame, so construction states draw direct
		// instead of churning the bitmap cache.
		c.emitBuilding(sx-w/2*zoom, sy-anchorY*zoom, zoom, e, view.Proj, e.ConstructionProgress)
		c.painter.flush(dst)
	} else {
		key := CacheKey{Entity: e.ID, Level: level, StyleSeed: e.StyleSeed, Kind: CacheKindBase}
		img := view.Cache.GetOrCreate(key, w, h, func(buf *ebiten.Image, scale float64) {
			c.emitBuilding(0, 0, scale, e, view.Proj, 1)
			c.painter.flush(buf)
		})
		if img != nil {
			blitAnchored(dst, img, zoom, view.DPR, sx, sy, w/2, anchorY)
		} else {
			c.emitBuilding(sx-w/2*zoom, sy-anchorY*zoom, zoom, e, view.Proj, 1)
			c.painter.flush(dst)
		}
	}

	if selected {
		halfW := view.Proj.TileW / 2 * zoom
		halfH := view.Proj.TileH / 2 * zoom
		hl := withAlpha(EntityPalette(e.StyleSeed).Accent, 0.5+0.3*math.Sin(t*4))
		lw := math.Max(1.5, 2*zoom)
		c.painter.line(sx, sy-halfH, sx+halfW, sy, lw, hl)
		c.painter.line(sx+halfW, sy, sx, sy+halfH, lw, hl)
		c.painter.line(sx, sy+halfH, sx-halfW, sy, lw, hl)
		c.painter.line(sx-halfW, sy, sx, sy-halfH, lw, hl)
		c.painter.flush(dst)
	}

	if view.Settings.ShowLabels {
		drawLabel(dst, e.Label, sx, sy+view.Proj.TileH/2*zoom)
	}
}

// emitBuilding queues one extruded block building. All geometry lives in a
// logical art space with the origin at the bitmap's top-left and the base
// diamond at the bottom; s scales it and (ox, oy) offsets it, which serves
// cache bitmaps and direct screen draws alike.
func (c *cityTheme) emitBuilding(ox, oy, s float64, e *WorldEntity, proj Projection, progress float64) {
	level := clampLevel(e.Level)
	halfW := proj.TileW / 2
	halfH := proj.TileH / 2
	fullWall := float64(level) * halfH
	wall := fullWall * clamp01(progress)
	w := proj.TileW
	h := proj.TileH + fullWall
	pal := EntityPalette(e.StyleSeed)

	px := func(x float64) float64 { return ox + x*s }
	py := func(y float64) float64 { return oy + y*s }

	baseY := h - halfH
	topY := baseY - wall

	c.painter.diamond(px(w/2), py(baseY), halfW*s, halfH*s, shade(pal.Base, 0.45))

	if wall > 0 {
		// Left face, right face, then the roof diamond over both.
		c.painter.quad(px(0), py(topY), px(w/2), py(topY+halfH), px(w/2), py(baseY+halfH), px(0), py(baseY), pal.Base)
		c.painter.quad(px(w/2), py(topY+halfH), px(w), py(topY), px(w), py(baseY), px(w/2), py(baseY+halfH), shade(pal.Base, 0.78))
		c.painter.diamond(px(w/2), py(topY), halfW*s, halfH*s, pal.Roof)
		c.painter.diamond(px(w/2), py(topY), halfW*0.35*s, halfH*0.35*s, shade(pal.Roof, 1.18))
		if level >= 3 {
			c.painter.line(px(w/2), py(topY), px(w/2), py(topY-8), s, shade(pal.Shadow, 1.2))
		}
	}

	if progress < 1 {
		c.emitScaffold(ox, oy, s, w, h, halfH, fullWall)
		return
	}

	// One window row per level, lit or dark from the style seed.
	for floor := 0; floor < level; floor++ {
		rowY := topY + float64(floor)*halfH + halfH*0.35
		for j, f := range [2]float64{0.30, 0.62} {
			lit := HashFloat(PositionHash(int64(e.StyleSeed)+int64(floor)*31, int64(j))) > 0.35
			col := shade(pal.Shadow, 0.8)
			if lit {
				col = cityWindowLit
			}
			// Left face slides down as it runs toward the viewer.
			c.painter.rect(px(f*halfW-2), py(rowY+f*halfH), 4*s, 5*s, col)
			c.painter.rect(px(w/2+f*halfW-2), py(rowY+(1-f)*halfH), 4*s, 5*s, shade(col, 0.9))
		}
	}
}

// emitScaffold queues the construction frame: corner poles to full height,
// cross braces, and a top beam.
func (c *cityTheme) emitScaffold(ox, oy, s, w, h, halfH, fullWall float64) {
	px := func(x float64) float64 { return ox + x*s }
	py := func(y float64) float64 { return oy + y*s }
	baseY := h - halfH
	topL := baseY - fullWall
	topB := h - fullWall
	lw := math.Max(1, 1.2*s)
	col := cityScaffold

	c.painter.line(px(0), py(baseY), px(0), py(topL), lw, col)
	c.painter.line(px(w), py(baseY), px(w), py(topL), lw, col)
	c.painter.line(px(w/2), py(h), px(w/2), py(topB), lw, col)
	c.painter.line(px(0), py(topL), px(w/2), py(topB), lw, col)
	c.painter.line(px(w/2), py(topB), px(w), py(topL), lw, col)
	c.painter.line(px(0), py(topL), px(w/2), py(h), lw, withAlpha(col, 0.7))
	c.painter.line(px(w/2), py(topB), px(0), py(baseY), lw, withAlpha(col, 0.7))
	c.painter.line(px(w/2), py(h), px(w), py(topL), lw, withAlpha(col, 0.7))
	c.painter.line(px(w), py(baseY), px(w/2), py(topB), lw, withAlpha(col, 0.7))
}

func (c *cityTheme) drawGlow(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64) {
	gw := view.Proj.TileW * 1.6
	gh := view.Proj.TileH * 1.6
	key := CacheKey{Entity: e.ID, Level: clampLevel(e.Level), StyleSeed: e.StyleSeed, Kind: CacheKindGlow}
	img := view.Cache.GetOrCreate(key, gw, gh, func(buf *ebiten.Image, scale float64) {
		accent := EntityPalette(e.StyleSeed).Accent
		for i := 4; i >= 1; i-- {
			f := float64(i) / 4
			c.painter.ellipse(gw/2*scale, gh/2*scale, gw/2*f*scale, gh/2*f*scale,
				withAlpha(accent, 0.05+0.04*(1-f)))
		}
		c.painter.flush(buf)
	})
	if img == nil {
		return
	}
	blitAnchored(dst, img, view.Camera.Zoom, view.DPR, sx, sy, gw/2, gh/2)
}

func (c *cityTheme) DrawDecorations(dst *ebiten.Image, view *View, t float64) {
	if len(view.Roads) == 0 {
		return
	}
	cam := view.Camera
	halfW := view.Proj.TileW / 2 * cam.Zoom
	halfH := view.Proj.TileH / 2 * cam.Zoom
	margin := view.Proj.TileW * cam.Zoom
	laneW := math.Max(1, 1.5*cam.Zoom)

	for i := range view.Roads {
		seg := &view.Roads[i]
		sx, sy := view.Proj.WorldToScreen(seg.Iso.X, seg.Iso.Y, cam, view.Width, view.Height)
		if !IsInViewport(sx, sy, view.Width, view.Height, margin) {
			continue
		}
		c.painter.diamond(sx, sy, halfW, halfH, cityAsphalt)

		h := PositionHash(int64(seg.Iso.X), int64(seg.Iso.Y))
		switch seg.Type {
		case RoadStraightH:
			c.painter.line(sx-halfW/2, sy-halfH/2, sx+halfW/2, sy+halfH/2, laneW, withAlpha(cityLaneMark, 0.3))
			if HashFloat(h) < 0.08 {
				c.emitBench(sx, sy, halfW, halfH, cam.Zoom)
			}
		case RoadStraightV:
			c.painter.line(sx+halfW/2, sy-halfH/2, sx-halfW/2, sy+halfH/2, laneW, withAlpha(cityLaneMark, 0.3))
			if HashFloat(h) < 0.08 {
				c.emitBench(sx, sy, halfW, halfH, cam.Zoom)
			}
		case RoadCross:
			if HashFloat(h) < 0.35 {
				c.emitLamp(sx, sy, halfW, halfH, cam.Zoom, t)
			}
		}
	}
	c.painter.flush(dst)
}

func (c *cityTheme) emitLamp(sx, sy, halfW, halfH, zoom, t float64) {
	poleH := 14 * zoom
	bx := sx + halfW*0.45
	by := sy + halfH*0.1
	flick := 0.8 + 0.2*math.Sin(t*6+bx)
	c.painter.line(bx, by, bx, by-poleH, math.Max(1, 1.2*zoom), cityLampPole)
	c.painter.circle(bx, by-poleH, 5*zoom, withAlpha(cityLampWarm, 0.15*flick))
	c.painter.circle(bx, by-poleH, 2.2*zoom, withAlpha(cityLampWarm, 0.9*flick))
}

func (c *cityTheme) emitBench(sx, sy, halfW, halfH, zoom float64) {
	bx := sx - halfW*0.55
	by := sy - halfH*0.9
	c.painter.rect(bx, by, 7*zoom, 2.5*zoom, cityBenchWood)
	c.painter.rect(bx, by-2*zoom, 7*zoom, 1.2*zoom, shade(cityBenchWood, 0.8))
}

// DrawParticles draws drifting ambient dust. Every mote's lane, speed and
// phase derive from its index hash, so there is no per-particle state.
func (c *cityTheme) DrawParticles(dst *ebiten.Image, view *View, t float64) {
	for i := 0; i < cityDustCount; i++ {
		h := PositionHash(int64(i), 0x57)
		phase := HashFloat(h) * 2 * math.Pi
		speed := cityDustSpeed.Lerp(HashFloat(h >> 13))
		lane := HashFloat(PositionHash(int64(i), 0x58))
		x := math.Mod(HashFloat(PositionHash(int64(i), 0x59))*view.Width+t*speed, view.Width+16) - 8
		y := lane*view.Height + 6*math.Sin(t*0.6+phase)
		a := 0.08 + 0.07*math.Sin(t*1.1+phase*3)
		c.painter.rect(x, y, 2, 2, withAlpha(cityDust, clamp01(a)))
	}
	c.painter.flush(dst)
}

func (c *cityTheme) DrawRipples(dst *ebiten.Image, view *View, ripples []Ripple, t float64) {
	if len(ripples) == 0 {
		return
	}
	for i := range ripples {
		rp := &ripples[i]
		c.painter.ring(rp.X, rp.Y, rp.Radius, 2.5, withAlpha(cityRippleTint, rp.Alpha))
		c.painter.ring(rp.X, rp.Y, rp.Radius*0.55, 1.5, withAlpha(cityRippleTint, rp.Alpha*0.5))
	}
	c.painter.flush(dst)
}
