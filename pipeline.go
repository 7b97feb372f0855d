package glade

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrNoTheme reports a theme name with no registered factory.
	ErrNoTheme = errors.New("glade: theme not registered")
	// ErrDestroyed reports use of a world after Destroy.
	ErrDestroyed = errors.New("glade: world destroyed")
)

// statsLogInterval is the clock gap between frame-stat flushes when
// Config.Debug is set.
const statsLogInterval = 5.0

// Option adjusts world construction. Options apply in order, before any
// subsystem is built.
type Option func(*World)

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithLogLevel sets the level on the world's logger. Place it after
// WithLogger when combining the two.
func WithLogLevel(level log.Level) Option {
	return func(w *World) { w.log.SetLevel(level) }
}

// WithRand injects the randomness source used for walker spawning and
// retargeting. Tests pass a seeded source for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// World owns one rendered scene: camera, caches, layout systems, theme
// renderers and the frame pipeline. Everything is explicit instance state;
// two worlds never share anything, so tests and split-screen hosts can run
// several side by side.
//
// World is single-threaded by contract. Update and Draw run from the game
// loop, and every other method must be called from the same goroutine.
type World struct {
	cfg  Config
	log  *log.Logger
	rng  *rand.Rand
	proj Projection

	camera   *Camera
	cache    *RenderCacheManager
	assets   *AssetStore
	registry *RendererRegistry
	blocks   *CityBlockSystem
	roadNet  *RoadNetworkBuilder
	npcs     *NPCSystem
	ripples  *rippleSystem

	themeName string
	set       RendererSet

	entities  []WorldEntity
	effective []GridPos
	order     []int

	roadSnap []RoadSegment
	decoSnap []Decoration

	settings Settings

	width, height float64
	clock         float64
	layoutDirty   bool
	destroyed     bool

	stats        frameStats
	faults       int
	lastStatsLog float64
}

// NewWorld builds a world from cfg and activates cfg.Theme. Construction
// fails on an invalid config, an unknown theme, or a cache that cannot be
// created; there is no degraded mode without a working render target.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:  cfg,
		proj: Projection{TileW: cfg.TileWidth, TileH: cfg.TileHeight},
		log:  newLogger(os.Stderr, log.InfoLevel),
	}
	if cfg.Debug {
		w.log.SetLevel(log.DebugLevel)
	}
	for _, opt := range opts {
		opt(w)
	}
	// Short instance id so two worlds logging to one sink stay apart.
	w.log = w.log.With("world", uuid.NewString()[:8])
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cache, err := NewRenderCacheManager(cfg.CacheCapacity, w.log)
	if err != nil {
		return nil, err
	}
	w.cache = cache
	w.assets = NewAssetStore(w.log)
	w.camera = NewCamera()
	w.blocks = NewCityBlockSystem(cfg.BlockSize, cfg.RoadWidth)
	w.roadNet = NewRoadNetworkBuilder()
	w.npcs = NewNPCSystem(cfg, w.rng)
	w.ripples = newRippleSystem()
	w.registry = NewRendererRegistry()
	registerBuiltinThemes(w.registry)

	if err := w.SetTheme(cfg.Theme); err != nil {
		w.cache.Dispose()
		return nil, err
	}
	return w, nil
}

// Camera returns the world's camera for host-driven scrolling and zoom.
func (w *World) Camera() *Camera {
	return w.camera
}

// Registry returns the renderer registry, for registering custom themes.
func (w *World) Registry() *RendererRegistry {
	return w.registry
}

// Assets returns the asset store. Hosts add images as their loads resolve.
func (w *World) Assets() *AssetStore {
	return w.assets
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// ThemeName returns the active theme.
func (w *World) ThemeName() string {
	return w.themeName
}

// Settings returns the current render toggles.
func (w *World) Settings() Settings {
	return w.settings
}

// SetSettings replaces the render toggles. Takes effect next Draw.
func (w *World) SetSettings(s Settings) {
	w.settings = s
}

// topology resolves the active layout topology; an unset (inherit) tag on
// an installed set behaves as none.
func (w *World) topology() LayoutTopology {
	if w.set.Topology == TopologyInherit {
		return TopologyNone
	}
	return w.set.Topology
}

// SetTheme switches the renderer bundle. The outgoing set is disposed
// before the fresh one is built, cached bitmaps are dropped wholesale
// (cache keys do not carry the theme), and the layout regenerates under
// the new topology. Switching to the active theme is a no-op.
func (w *World) SetTheme(name string) error {
	if w.destroyed {
		return ErrDestroyed
	}
	if name == w.themeName {
		return nil
	}
	factory, ok := w.registry.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoTheme, name)
	}
	w.set.Dispose()
	w.set = factory(w)
	w.themeName = name
	w.cache.Clear()
	w.layoutDirty = true
	w.log.Info("theme installed", "theme", name, "topology", w.topology())
	return nil
}

// UpdateEntityPositions replaces the entity list. Layout regenerates only
// when membership or positions actually changed; pure attribute updates
// (level, progress, label) are picked up without a relayout.
func (w *World) UpdateEntityPositions(list []WorldEntity) {
	if w.destroyed {
		return
	}
	changed := len(list) != len(w.entities)
	if !changed {
		for i := range list {
			if list[i].ID != w.entities[i].ID || list[i].Pos != w.entities[i].Pos {
				changed = true
				break
			}
		}
	}
	w.entities = append(w.entities[:0], list...)
	if changed {
		w.effective = w.effective[:0]
		for i := range w.entities {
			w.effective = append(w.effective, w.entities[i].Pos)
		}
		w.layoutDirty = true
	}
}

// InvalidateCache drops every cached bitmap belonging to the entity. Call
// it when an entity's appearance changes in place.
func (w *World) InvalidateCache(entityID string) {
	if w.destroyed {
		return
	}
	w.cache.InvalidateEntity(entityID)
}

// TriggerRipple starts interaction feedback at screen coordinates.
func (w *World) TriggerRipple(x, y float64) {
	if w.destroyed {
		return
	}
	w.ripples.Trigger(x, y)
}

// Resize records the new canvas size and drops cached bitmaps so nothing
// stale gets stretched. Draw also routes through here when it sees the
// screen change size.
func (w *World) Resize(width, height float64) {
	if w.destroyed || width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	w.cache.Clear()
}

// SetDeviceScale updates the device pixel ratio. A change invalidates the
// whole bitmap cache.
func (w *World) SetDeviceScale(dpr float64) {
	if w.destroyed {
		return
	}
	w.cache.SetDeviceScale(dpr)
}

// EntityAt returns the entity whose effective position is nearest the
// screen point, within one cell. Used for click selection.
func (w *World) EntityAt(sx, sy float64) (string, bool) {
	if w.destroyed {
		return "", false
	}
	gx, gy := w.proj.ScreenToWorld(sx, sy, w.camera.State(), w.width, w.height)
	best := ""
	bestD := 1.0
	for i := range w.entities {
		p := w.effective[i]
		d := math.Max(math.Abs(p.X-gx), math.Abs(p.Y-gy))
		if d < bestD {
			bestD = d
			best = w.entities[i].ID
		}
	}
	return best, best != ""
}

// Update advances one fixed tick: camera animation, ripple envelopes, lazy
// layout regeneration and the walker simulation. All simulation state for
// a frame settles here before Draw reads any of it.
func (w *World) Update() error {
	if w.destroyed {
		return ErrDestroyed
	}
	dt := 1.0 / float64(ebiten.TPS())
	w.clock += dt

	w.camera.Update(float32(dt))
	w.ripples.Update(float32(dt))

	if w.layoutDirty {
		w.layoutDirty = false
		w.regenLayout()
	}
	if w.topology() == TopologyNetwork {
		w.npcs.Update(dt)
	}
	return nil
}

// regenLayout rebuilds the active topology's derived state: occupancy,
// roads, decorations, walkers and the effective draw positions.
func (w *World) regenLayout() {
	w.effective = w.effective[:0]
	switch w.topology() {
	case TopologyBlocks:
		w.blocks.SyncEntityPositions(w.entities)
		w.roadSnap = w.blocks.GenerateRoads()
		w.decoSnap = nil
		w.npcs.Reseed(nil)
		for i := range w.entities {
			if blk, ok := w.blocks.EntityBlock(w.entities[i].ID); ok {
				w.effective = append(w.effective, blk.CenterIso)
			} else {
				w.effective = append(w.effective, w.entities[i].Pos)
			}
		}
	case TopologyNetwork:
		w.roadNet.SyncEntityPositions(w.entities)
		w.roadSnap = w.roadNet.Roads()
		w.decoSnap = w.roadNet.Decorations()
		w.npcs.Reseed(w.roadNet.Drivable())
		for i := range w.entities {
			w.effective = append(w.effective, w.entities[i].Pos)
		}
	default:
		w.roadSnap = nil
		w.decoSnap = nil
		w.npcs.Reseed(nil)
		for i := range w.entities {
			w.effective = append(w.effective, w.entities[i].Pos)
		}
	}
	w.log.Debug("layout regenerated",
		"topology", w.topology(),
		"entities", len(w.entities),
		"roads", len(w.roadSnap),
		"decorations", len(w.decoSnap),
		"walkers", len(w.npcs.NPCs()),
	)
}

func (w *World) buildView() View {
	return View{
		Camera:      w.camera.State(),
		Width:       w.width,
		Height:      w.height,
		DPR:         w.cache.DeviceScale(),
		Proj:        w.proj,
		Settings:    w.settings,
		Assets:      w.assets,
		Cache:       w.cache,
		Roads:       w.roadSnap,
		Decorations: w.decoSnap,
		NPCs:        w.npcs.NPCs(),
		Log:         w.log,
	}
}

// Draw paints one frame in fixed layer order: background, grid,
// decorations, depth-sorted entities, particles, focal element, and
// ripples last so feedback overlays everything.
func (w *World) Draw(screen *ebiten.Image) {
	if w.destroyed {
		return
	}
	b := screen.Bounds()
	if sw, sh := float64(b.Dx()), float64(b.Dy()); sw != w.width || sh != w.height {
		w.Resize(sw, sh)
	}

	view := w.buildView()

	if w.set.Background != nil {
		w.set.Background.DrawBackground(screen, &view, w.clock)
	}
	if w.settings.ShowGrid && w.set.Grid != nil {
		w.set.Grid.DrawGrid(screen, &view, w.clock)
	}
	if w.set.Decoration != nil {
		w.set.Decoration.DrawDecorations(screen, &view, w.clock)
	}

	sortStart := time.Now()
	w.depthSort()
	frame := frameStats{sortTime: time.Since(sortStart)}

	drawStart := time.Now()
	cam := view.Camera
	margin := math.Max(w.proj.TileW, w.proj.TileH) * cam.Zoom * 2
	for _, idx := range w.order {
		e := &w.entities[idx]
		p := w.effective[idx]
		sx, sy := w.proj.WorldToScreen(p.X, p.Y, cam, w.width, w.height)
		if !IsInViewport(sx, sy, w.width, w.height, margin) {
			frame.entitiesCulled++
			continue
		}
		w.drawEntity(screen, &view, e, sx, sy)
		frame.entitiesDrawn++
	}
	frame.drawTime = time.Since(drawStart)

	if w.settings.ShowParticles && w.set.Particle != nil {
		w.set.Particle.DrawParticles(screen, &view, w.clock)
	}
	if w.set.Focal != nil {
		w.set.Focal.DrawFocal(screen, &view, w.clock)
	}
	if w.set.Ripple != nil {
		w.set.Ripple.DrawRipples(screen, &view, w.ripples.Snapshot(), w.clock)
	}

	frame.cacheHits, frame.cacheMisses = w.cache.takeStats()
	frame.renderFaults = w.faults
	w.faults = 0
	w.stats.add(frame)
	if w.cfg.Debug && w.clock-w.lastStatsLog >= statsLogInterval {
		w.lastStatsLog = w.clock
		w.stats.logStats(w.log)
		w.stats.reset()
	}
}

// drawEntity delegates to the entity role with a panic guard. One broken
// entity renderer logs and skips; the rest of the frame still draws. A set
// without an entity role falls back to the placeholder stand-in.
func (w *World) drawEntity(screen *ebiten.Image, view *View, e *WorldEntity, sx, sy float64) {
	defer func() {
		if r := recover(); r != nil {
			w.faults++
			w.log.Error("entity renderer panicked", "entity", e.ID, "panic", r)
		}
	}()
	if w.set.Entity == nil {
		DrawPlaceholder(screen, view, e, sx, sy)
		return
	}
	selected := w.settings.SelectedID != "" && w.settings.SelectedID == e.ID
	w.set.Entity.DrawEntity(screen, view, e, sx, sy, selected, w.clock)
}

// depthSort orders entity indices by ascending X+Y of the effective
// position, the painter's rule for isometric occlusion. The buffer
// persists across frames; entities barely move between frames, so an
// insertion sort finishes in near-linear time.
func (w *World) depthSort() {
	if len(w.order) != len(w.entities) {
		w.order = w.order[:0]
		for i := range w.entities {
			w.order = append(w.order, i)
		}
	}
	for i := 1; i < len(w.order); i++ {
		for j := i; j > 0 && w.depth(w.order[j-1]) > w.depth(w.order[j]); j-- {
			w.order[j-1], w.order[j] = w.order[j], w.order[j-1]
		}
	}
}

func (w *World) depth(i int) float64 {
	p := w.effective[i]
	return p.X + p.Y
}

// Destroy disposes the renderer set, caches and assets. Idempotent; every
// later call on the world is a no-op and Update reports ErrDestroyed.
func (w *World) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.set.Dispose()
	w.set = RendererSet{}
	w.cache.Dispose()
	w.assets.Dispose()
	w.log.Debug("world destroyed")
}
