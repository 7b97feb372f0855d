package glade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5

// FPSOverlay displays the current FPS and TPS in the top-left corner of the
// screen, with an optional status line below. The text refreshes every ~0.5
// seconds. Hosts call Update once per tick and Draw after World.Draw.
type FPSOverlay struct {
	// Status is an optional extra line, e.g. an entity count.
	Status string

	img  *ebiten.Image
	wait float64
}

// NewFPSOverlay creates the overlay with its backing image.
func NewFPSOverlay() *FPSOverlay {
	// 160x48 is enough for "FPS: 60.0" / "TPS: 60.0" plus one status line.
	return &FPSOverlay{
		img:  ebiten.NewImage(160, 48),
		wait: fpsRefreshInterval,
	}
}

// Update accumulates time and refreshes the overlay text when due.
func (o *FPSOverlay) Update(dt float64) {
	o.wait += dt
	if o.wait < fpsRefreshInterval {
		return
	}
	o.wait = 0

	o.img.Clear()
	// Semi-transparent background for readability.
	o.img.Fill(color.RGBA{0, 0, 0, 128})

	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if o.Status != "" {
		text += "\n" + o.Status
	}
	ebitenutil.DebugPrint(o.img, text)
}

// Draw blits the overlay onto the screen.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(o.img, op)
}

// Dispose releases the backing image.
func (o *FPSOverlay) Dispose() {
	o.img.Deallocate()
}
