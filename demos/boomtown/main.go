// Boomtown grows a city from nothing. Lots spawn on the grid over time,
// rise through scaffolded construction, then upgrade level by level while
// the camera tours each new site. A longevity test for the glade render
// cache: every upgrade invalidates one entity and re-renders it.
//
// Press S to save a screenshot, G to toggle the grid.
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/glade"
	"github.com/tanema/gween/ease"
)

const (
	windowTitle  = "Glade — Boomtown"
	screenW      = 1120
	screenH      = 700
	maxLots      = 40
	spawnEvery   = 2.5 // seconds between new lots
	buildSeconds = 4.0 // construction time per level
	upgradeEvery = 3.5 // seconds between upgrade attempts
)

type game struct {
	world    *glade.World
	fps      *glade.FPSOverlay
	lots     []glade.WorldEntity
	saveShot bool

	spawnWait   float64
	upgradeWait float64
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveShot = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s := g.world.Settings()
		s.ShowGrid = !s.ShowGrid
		g.world.SetSettings(s)
	}

	g.spawnWait += dt
	if g.spawnWait >= spawnEvery && len(g.lots) < maxLots {
		g.spawnWait = 0
		g.spawnLot()
	}

	g.upgradeWait += dt
	if g.upgradeWait >= upgradeEvery {
		g.upgradeWait = 0
		g.upgradeLot()
	}

	for i := range g.lots {
		if g.lots[i].ConstructionProgress < 1 {
			g.lots[i].ConstructionProgress = min(g.lots[i].ConstructionProgress+dt/buildSeconds, 1)
		}
	}
	g.world.UpdateEntityPositions(g.lots)

	g.fps.Status = fmt.Sprintf("lots: %d", len(g.lots))
	g.fps.Update(dt)
	return g.world.Update()
}

// spawnLot places a new construction site on the grid and scrolls the camera
// to it. The scatter radius widens as the town fills in.
func (g *game) spawnLot() {
	n := len(g.lots) + 1
	r := 2 + n/3
	pos := glade.GridPos{
		X: float64(rand.Intn(2*r+1) - r),
		Y: float64(rand.Intn(2*r+1) - r),
	}
	g.lots = append(g.lots, glade.WorldEntity{
		ID:        fmt.Sprintf("lot-%02d", n),
		Pos:       pos,
		Level:     1,
		StyleSeed: rand.Uint32(),
		Label:     fmt.Sprintf("Lot %d", n),
	})

	cfg := g.world.Config()
	g.world.Camera().ScrollTo(
		-(pos.X-pos.Y)*cfg.TileWidth/2,
		-(pos.X+pos.Y)*cfg.TileHeight/2,
		1.2, ease.InOutQuad)
}

// upgradeLot bumps a random finished building one level and sends it back
// through construction. The stale bitmap is dropped immediately instead of
// waiting for eviction.
func (g *game) upgradeLot() {
	done := make([]int, 0, len(g.lots))
	for i := range g.lots {
		if g.lots[i].ConstructionProgress >= 1 && g.lots[i].Level < glade.MaxLevel {
			done = append(done, i)
		}
	}
	if len(done) == 0 {
		return
	}
	i := done[rand.Intn(len(done))]
	g.lots[i].Level++
	g.lots[i].ConstructionProgress = 0.35
	g.world.InvalidateCache(g.lots[i].ID)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	g.fps.Draw(screen)

	if g.saveShot {
		g.saveShot = false
		path, err := glade.SaveScreenshot(screen, "screenshots", "boomtown")
		if err != nil {
			log.Printf("screenshot: %v", err)
		} else {
			log.Printf("screenshot saved: %s", path)
		}
	}
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return outsideW, outsideH
}

func main() {
	cfg := glade.DefaultConfig()
	cfg.Debug = true
	world, err := glade.NewWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer world.Destroy()

	s := world.Settings()
	s.ShowParticles = true
	s.ShowLabels = true
	world.SetSettings(s)

	fps := glade.NewFPSOverlay()
	defer fps.Dispose()

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)

	if err := ebiten.RunGame(&game{world: world, fps: fps}); err != nil {
		log.Fatal(err)
	}
}
