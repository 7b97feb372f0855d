package glade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	villageSkyTop     = Color{0.62, 0.76, 0.88, 1}
	villageSkyBottom  = Color{0.88, 0.87, 0.76, 1}
	villageGrassNear  = Color{0.55, 0.68, 0.40, 1}
	villageGrassFar   = Color{0.44, 0.58, 0.34, 1}
	villagePath       = Color{0.62, 0.52, 0.38, 1}
	villageTrunk      = Color{0.40, 0.28, 0.18, 1}
	villageLeaf       = Color{0.30, 0.50, 0.25, 1}
	villageLeafLight  = Color{0.42, 0.62, 0.32, 1}
	villageTimber     = Color{0.52, 0.38, 0.26, 1}
	villageBrick      = Color{0.55, 0.30, 0.22, 1}
	villageWindowWarm = Color{1.00, 0.88, 0.58, 1}
	villageFlesh      = Color{0.92, 0.76, 0.62, 1}
	villageInk        = Color{0, 0, 0, 1}
	villageFireflyC   = Color{0.85, 0.95, 0.45, 1}
	villageRippleTint = Color{1.00, 1.00, 0.92, 1}
)

var villagerTints = [4]Color{
	{0.75, 0.35, 0.30, 1},
	{0.32, 0.48, 0.70, 1},
	{0.45, 0.60, 0.35, 1},
	{0.70, 0.58, 0.30, 1},
}

var flowerTints = [4]Color{
	{0.95, 0.55, 0.70, 1},
	{0.98, 0.90, 0.45, 1},
	{0.96, 0.96, 0.96, 1},
	{0.72, 0.55, 0.90, 1},
}

const (
	// villageHorizon splits the background between sky and meadow.
	villageHorizon   = 0.38
	villageFireflies = 24
)

// villageSkinNames are the optional per-level asset names checked before
// the procedural cottage draws.
var villageSkinNames = [MaxLevel]string{
	"village/cottage-1", "village/cottage-2", "village/cottage-3", "village/cottage-4",
}

// villageTheme is the network-topology look: cottages on a meandering path
// web with hash-placed greenery and ambient walkers.
type villageTheme struct {
	painter canvasPainter
}

func newVillageTheme(*World) RendererSet {
	v := &villageTheme{}
	return RendererSet{
		Topology:   TopologyNetwork,
		Background: v,
		Grid:       v,
		Entity:     v,
		Particle:   v,
		Decoration: v,
		Ripple:     v,
	}
}

func (v *villageTheme) DrawBackground(dst *ebiten.Image, view *View, t float64) {
	horizon := view.Height * villageHorizon
	v.painter.vgradient(0, 0, view.Width, horizon, villageSkyTop, villageSkyBottom)
	v.painter.vgradient(0, horizon, view.Width, view.Height-horizon, villageGrassFar, villageGrassNear)
	v.painter.flush(dst)
}

func (v *villageTheme) DrawGrid(dst *ebiten.Image, view *View, t float64) {
	emitLattice(&v.painter, view, withAlpha(villageTrunk, 0.07))
	v.painter.flush(dst)
}

func (v *villageTheme) DrawEntity(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64, selected bool, t float64) {
	zoom := view.Camera.Zoom
	level := clampLevel(e.Level)
	wallH := (0.35 + 0.2*float64(level)) * view.Proj.TileH
	roofH := view.Proj.TileH * 0.6
	w := view.Proj.TileW
	h := view.Proj.TileH + wallH + roofH
	anchorY := h - view.Proj.TileH/2

	v.drawShadow(dst, view, e, sx, sy)

	if img := skinImage(view.Assets, villageSkinNames[level-1]); img != nil {
		blitSkin(dst, img, view, sx, sy)
	} else if e.ConstructionProgress < 1 {
		v.emitCottage(sx-w/2*zoom, sy-anchorY*zoom, zoom, e, view.Proj, e.ConstructionProgress)
		v.painter.flush(dst)
	} else {
		key := CacheKey{Entity: e.ID, Level: level, StyleSeed: e.StyleSeed, Kind: CacheKindBase}
		img := view.Cache.GetOrCreate(key, w, h, func(buf *ebiten.Image, scale float64) {
			v.emitCottage(0, 0, scale, e, view.Proj, 1)
			v.painter.flush(buf)
		})
		if img != nil {
			blitAnchored(dst, img, zoom, view.DPR, sx, sy, w/2, anchorY)
		} else {
			v.emitCottage(sx-w/2*zoom, sy-anchorY*zoom, zoom, e, view.Proj, 1)
			v.painter.flush(dst)
		}
	}

	if selected {
		pulse := 0.5 + 0.3*math.Sin(t*4)
		accent := EntityPalette(e.StyleSeed).Accent
		v.painter.ring(sx, sy, view.Proj.TileW*0.55*zoom, 2, withAlpha(accent, pulse))
		v.painter.flush(dst)
	}

	if view.Settings.ShowLabels {
		drawLabel(dst, e.Label, sx, sy+view.Proj.TileH/2*zoom)
	}
}

// emitCottage queues a peaked-roof cottage in the same scaled art space
// emitBuilding uses for the city.
func (v *villageTheme) emitCottage(ox, oy, s float64, e *WorldEntity, proj Projection, progress float64) {
	level := clampLevel(e.Level)
	halfW := proj.TileW / 2
	halfH := proj.TileH / 2
	fullWall := (0.35 + 0.2*float64(level)) * proj.TileH
	wall := fullWall * clamp01(progress)
	roofH := proj.TileH * 0.6
	w := proj.TileW
	h := proj.TileH + fullWall + roofH
	pal := EntityPalette(e.StyleSeed)

	px := func(x float64) float64 { return ox + x*s }
	py := func(y float64) float64 { return oy + y*s }

	baseY := h - halfH
	topY := baseY - wall

	v.painter.diamond(px(w/2), py(baseY), halfW*s, halfH*s, shade(villageGrassNear, 0.85))

	if wall > 0 {
		v.painter.quad(px(0), py(topY), px(w/2), py(topY+halfH), px(w/2), py(baseY+halfH), px(0), py(baseY), shade(pal.Base, 1.1))
		v.painter.quad(px(w/2), py(topY+halfH), px(w), py(topY), px(w), py(baseY), px(w/2), py(baseY+halfH), shade(pal.Base, 0.82))
	}

	if progress < 1 {
		v.emitFrame(ox, oy, s, w, h, halfH, fullWall)
		return
	}

	// Peaked roof: two slopes meeting at an apex over the wall top.
	apexY := topY - roofH
	v.painter.tri(px(0), py(topY), px(w/2), py(topY+halfH), px(w/2), py(apexY), pal.Roof)
	v.painter.tri(px(w/2), py(topY+halfH), px(w), py(topY), px(w/2), py(apexY), shade(pal.Roof, 0.78))

	seedHash := PositionHash(int64(e.StyleSeed), 0x33)
	if HashFloat(seedHash) < 0.5 {
		v.painter.rect(px(w*0.66), py(apexY+roofH*0.28), 4*s, 8*s, villageBrick)
	}

	// Door on the near-left face, one warm window on the right.
	const df = 0.55
	v.painter.rect(px(df*halfW-3), py(baseY+df*halfH-9), 6*s, 9*s, shade(pal.Shadow, 0.9))
	const wf = 0.45
	v.painter.rect(px(w/2+wf*halfW-2), py(topY+(1-wf)*halfH+4), 4*s, 4*s, villageWindowWarm)
}

// emitFrame queues the timber framing shown while a cottage is under
// construction.
func (v *villageTheme) emitFrame(ox, oy, s, w, h, halfH, fullWall float64) {
	px := func(x float64) float64 { return ox + x*s }
	py := func(y float64) float64 { return oy + y*s }
	baseY := h - halfH
	topL := baseY - fullWall
	topB := h - fullWall
	lw := math.Max(1, 1.2*s)

	v.painter.line(px(0), py(baseY), px(0), py(topL), lw, villageTimber)
	v.painter.line(px(w), py(baseY), px(w), py(topL), lw, villageTimber)
	v.painter.line(px(w/2), py(h), px(w/2), py(topB), lw, villageTimber)
	v.painter.line(px(0), py(topL), px(w/2), py(topB), lw, villageTimber)
	v.painter.line(px(w/2), py(topB), px(w), py(topL), lw, villageTimber)
	v.painter.line(px(0), py(topL), px(w/2), py(h), lw, withAlpha(villageTimber, 0.7))
	v.painter.line(px(w/2), py(topB), px(w), py(baseY), lw, withAlpha(villageTimber, 0.7))
}

func (v *villageTheme) drawShadow(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64) {
	gw := view.Proj.TileW
	gh := view.Proj.TileH * 0.7
	key := CacheKey{Entity: e.ID, Level: clampLevel(e.Level), StyleSeed: e.StyleSeed, Kind: CacheKindShadow}
	img := view.Cache.GetOrCreate(key, gw, gh, func(buf *ebiten.Image, scale float64) {
		v.painter.ellipse(gw/2*scale, gh/2*scale, gw*0.42*scale, gh*0.42*scale,
			withAlpha(villageInk, 0.22))
		v.painter.flush(buf)
	})
	if img == nil {
		return
	}
	blitAnchored(dst, img, view.Camera.Zoom, view.DPR, sx, sy, gw/2, gh/2)
}

func (v *villageTheme) DrawDecorations(dst *ebiten.Image, view *View, t float64) {
	cam := view.Camera
	halfW := view.Proj.TileW / 2 * cam.Zoom
	halfH := view.Proj.TileH / 2 * cam.Zoom
	margin := view.Proj.TileW * cam.Zoom

	for i := range view.Roads {
		seg := &view.Roads[i]
		sx, sy := view.Proj.WorldToScreen(seg.Iso.X, seg.Iso.Y, cam, view.Width, view.Height)
		if !IsInViewport(sx, sy, view.Width, view.Height, margin) {
			continue
		}
		v.painter.diamond(sx, sy, halfW*0.92, halfH*0.92, villagePath)
		h := PositionHash(int64(seg.Iso.X), int64(seg.Iso.Y))
		if HashFloat(h) < 0.3 {
			dx := (HashFloat(h>>5) - 0.5) * halfW
			dy := (HashFloat(h>>9) - 0.5) * halfH
			v.painter.circle(sx+dx, sy+dy, 1.2*cam.Zoom, withAlpha(shade(villagePath, 0.7), 0.8))
		}
	}

	for i := range view.Decorations {
		d := &view.Decorations[i]
		sx, sy := view.Proj.WorldToScreen(d.Pos.X, d.Pos.Y, cam, view.Width, view.Height)
		if !IsInViewport(sx, sy, view.Width, view.Height, margin) {
			continue
		}
		switch d.Kind {
		case DecoTree:
			v.emitTree(sx, sy, cam.Zoom, d.Seed)
		case DecoBush:
			v.emitBush(sx, sy, cam.Zoom, d.Seed)
		case DecoFlower:
			v.emitFlowers(sx, sy, halfW, halfH, cam.Zoom, d.Seed)
		}
	}

	for i := range view.NPCs {
		npc := &view.NPCs[i]
		sx, sy := view.Proj.WorldToScreen(npc.Pos.X, npc.Pos.Y, cam, view.Width, view.Height)
		if !IsInViewport(sx, sy, view.Width, view.Height, margin) {
			continue
		}
		v.emitVillager(sx, sy, cam.Zoom, npc)
	}

	v.painter.flush(dst)
}

func (v *villageTheme) emitTree(sx, sy, zoom float64, seed uint64) {
	f := 0.85 + 0.3*HashFloat(seed)
	trunkH := 10 * zoom * f
	v.painter.line(sx, sy, sx, sy-trunkH, 2.5*zoom, villageTrunk)
	v.painter.circle(sx, sy-trunkH-4*zoom*f, 6.5*zoom*f, villageLeaf)
	v.painter.circle(sx-1.5*zoom, sy-trunkH-5*zoom*f, 4*zoom*f, villageLeafLight)
}

func (v *villageTheme) emitBush(sx, sy, zoom float64, seed uint64) {
	f := 0.8 + 0.4*HashFloat(seed)
	v.painter.circle(sx, sy-2*zoom, 3.5*zoom*f, villageLeaf)
	v.painter.circle(sx+2*zoom*f, sy-1.5*zoom, 2.5*zoom*f, villageLeafLight)
}

func (v *villageTheme) emitFlowers(sx, sy, halfW, halfH, zoom float64, seed uint64) {
	for k := int64(0); k < 3; k++ {
		h := PositionHash(int64(seed), k)
		dx := (HashFloat(h) - 0.5) * halfW * 0.8
		dy := (HashFloat(h>>7) - 0.5) * halfH * 0.8
		v.painter.circle(sx+dx, sy+dy, 1.3*zoom, flowerTints[hashPick(h, len(flowerTints))])
	}
}

// emitVillager draws one walker: shadow blip, body, head. The walk cycle is
// a two-frame bob keyed off the animation frame counter.
func (v *villageTheme) emitVillager(sx, sy, zoom float64, npc *NPC) {
	bob := 0.0
	if npc.Frame%2 == 1 {
		bob = -1.5 * zoom
	}
	tint := villagerTints[npc.Variant%len(villagerTints)]
	v.painter.ellipse(sx, sy+zoom, 3*zoom, 1.5*zoom, withAlpha(villageInk, 0.25))
	v.painter.ellipse(sx, sy-4*zoom+bob, 2.8*zoom, 4*zoom, tint)
	v.painter.circle(sx, sy-9.5*zoom+bob, 2.2*zoom, villageFlesh)
	switch npc.Dir {
	case DirLeft:
		v.painter.circle(sx-0.8*zoom, sy-9.5*zoom+bob, 0.7*zoom, shade(villageFlesh, 0.75))
	case DirRight:
		v.painter.circle(sx+0.8*zoom, sy-9.5*zoom+bob, 0.7*zoom, shade(villageFlesh, 0.75))
	}
}

// DrawParticles draws blinking fireflies wandering on hash-seeded orbits.
func (v *villageTheme) DrawParticles(dst *ebiten.Image, view *View, t float64) {
	for i := 0; i < villageFireflies; i++ {
		h := PositionHash(int64(i), 0x91)
		cx := HashFloat(h) * view.Width
		cy := HashFloat(h>>17) * view.Height
		p1 := HashFloat(PositionHash(int64(i), 0x92)) * 2 * math.Pi
		p2 := HashFloat(PositionHash(int64(i), 0x93)) * 2 * math.Pi
		x := cx + 30*math.Sin(t*0.35+p1)
		y := cy + 18*math.Sin(t*0.5+p2)
		blink := clamp01(math.Sin(t*2.2+p1*3)) * 0.8
		if blink <= 0.02 {
			continue
		}
		v.painter.circle(x, y, 4, withAlpha(villageFireflyC, blink*0.25))
		v.painter.circle(x, y, 1.8, withAlpha(villageFireflyC, blink))
	}
	v.painter.flush(dst)
}

func (v *villageTheme) DrawRipples(dst *ebiten.Image, view *View, ripples []Ripple, t float64) {
	if len(ripples) == 0 {
		return
	}
	for i := range ripples {
		rp := &ripples[i]
		v.painter.circle(rp.X, rp.Y, rp.Radius, withAlpha(villageRippleTint, rp.Alpha*0.3))
		v.painter.ring(rp.X, rp.Y, rp.Radius, 1.5, withAlpha(villageRippleTint, rp.Alpha*0.6))
	}
	v.painter.flush(dst)
}
