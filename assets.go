package glade

import (
	"github.com/charmbracelet/log"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssetStore hands externally loaded images to renderers. Decoding and
// loading are host concerns; the store only maps names to images and
// remembers which names were requested before they resolved. A nil result
// means "draw the procedural stand-in instead", so an asset that never
// arrives still leaves no hole in the world.
type AssetStore struct {
	images map[string]*ebiten.Image
	missed map[string]struct{}
	log    *log.Logger
}

func NewAssetStore(logger *log.Logger) *AssetStore {
	return &AssetStore{
		images: make(map[string]*ebiten.Image),
		missed: make(map[string]struct{}),
		log:    logger,
	}
}

// Add registers an image under name, replacing any previous entry. Hosts
// call it when an asynchronous load resolves; the next frame picks it up.
// The store takes ownership of the image.
func (a *AssetStore) Add(name string, img *ebiten.Image) {
	if img == nil {
		return
	}
	a.images[name] = img
	delete(a.missed, name)
}

// Image returns the named image, or nil while it is unresolved. The first
// miss per name is logged at debug level; built-in themes probe optional
// skin names on every frame, so a miss is not an error.
func (a *AssetStore) Image(name string) *ebiten.Image {
	if img, ok := a.images[name]; ok {
		return img
	}
	if _, seen := a.missed[name]; !seen {
		a.missed[name] = struct{}{}
		a.log.Debug("asset unresolved, drawing stand-in", "name", name)
	}
	return nil
}

// Len returns the number of resolved images.
func (a *AssetStore) Len() int {
	return len(a.images)
}

// Dispose releases every stored image and empties the store.
func (a *AssetStore) Dispose() {
	for _, img := range a.images {
		img.Deallocate()
	}
	clear(a.images)
	clear(a.missed)
}
