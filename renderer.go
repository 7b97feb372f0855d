package glade

import (
	"github.com/charmbracelet/log"

	"github.com/hajimehoshi/ebiten/v2"
)

// View is the read-only per-frame context handed to every renderer role.
// The pipeline rebuilds it at the start of each Draw; roles must not
// retain it across frames.
type View struct {
	Camera CameraState
	Width  float64
	Height float64
	DPR    float64
	Proj   Projection

	Settings Settings
	Assets   *AssetStore
	Cache    *RenderCacheManager

	// Layout snapshot for the active topology. Slices are owned by the
	// world and valid for the current frame only.
	Roads       []RoadSegment
	Decorations []Decoration
	NPCs        []NPC

	Log *log.Logger
}

// BackgroundRenderer fills the whole canvas before anything else draws.
type BackgroundRenderer interface {
	DrawBackground(dst *ebiten.Image, view *View, t float64)
}

// GridRenderer draws the logical-plane lattice when Settings.ShowGrid is set.
type GridRenderer interface {
	DrawGrid(dst *ebiten.Image, view *View, t float64)
}

// EntityRenderer draws one world entity at its projected screen position.
// Entities arrive depth-sorted and viewport-culled.
type EntityRenderer interface {
	DrawEntity(dst *ebiten.Image, view *View, e *WorldEntity, sx, sy float64, selected bool, t float64)
}

// ParticleRenderer draws the ambient particle layer when
// Settings.ShowParticles is set.
type ParticleRenderer interface {
	DrawParticles(dst *ebiten.Image, view *View, t float64)
}

// DecorationRenderer draws the procedural layout layer: roads, decorations
// and NPCs from the View snapshot. It runs before entities so buildings
// occlude it.
type DecorationRenderer interface {
	DrawDecorations(dst *ebiten.Image, view *View, t float64)
}

// RippleRenderer draws interaction feedback. It always runs last.
type RippleRenderer interface {
	DrawRipples(dst *ebiten.Image, view *View, ripples []Ripple, t float64)
}

// FocalRenderer is an optional role for a single highlighted element.
// No built-in theme installs one; the slot exists for custom sets.
type FocalRenderer interface {
	DrawFocal(dst *ebiten.Image, view *View, t float64)
}

// Disposer is implemented by renderer roles that hold resources beyond
// the cache, such as prerendered bitmaps. The pipeline calls Dispose on
// theme switch and on Destroy.
type Disposer interface {
	Dispose()
}

// LayoutTopology selects which layout system feeds the View snapshot.
type LayoutTopology uint8

const (
	// TopologyInherit keeps the base topology when merging sets. A set
	// installed with TopologyInherit behaves as TopologyNone.
	TopologyInherit LayoutTopology = iota
	// TopologyNone draws entities free-floating with no layout layer.
	TopologyNone
	// TopologyBlocks drives a CityBlockSystem: entities snap to block
	// centers and roads follow block boundaries.
	TopologyBlocks
	// TopologyNetwork drives a RoadNetworkBuilder: an MST road network
	// with hash-placed decorations and wandering NPCs.
	TopologyNetwork
)

func (t LayoutTopology) String() string {
	switch t {
	case TopologyInherit:
		return "inherit"
	case TopologyNone:
		return "none"
	case TopologyBlocks:
		return "blocks"
	case TopologyNetwork:
		return "network"
	}
	return "unknown"
}

// RendererSet bundles one implementation per role for a theme. Nil roles
// are skipped by the pipeline; Background, Entity and Ripple should be
// present for a usable theme.
type RendererSet struct {
	Topology   LayoutTopology
	Background BackgroundRenderer
	Grid       GridRenderer
	Entity     EntityRenderer
	Particle   ParticleRenderer
	Decoration DecorationRenderer
	Ripple     RippleRenderer
	Focal      FocalRenderer
}

func (s *RendererSet) roles() [7]any {
	return [7]any{s.Background, s.Grid, s.Entity, s.Particle, s.Decoration, s.Ripple, s.Focal}
}

// Dispose releases every role that implements Disposer. An object filling
// several roles is disposed exactly once.
func (s *RendererSet) Dispose() {
	var done []Disposer
	for _, r := range s.roles() {
		d, ok := r.(Disposer)
		if !ok {
			continue
		}
		dup := false
		for _, prev := range done {
			if prev == d {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		done = append(done, d)
		d.Dispose()
	}
}

// MergeRendererSets returns a copy of base with every non-nil role from
// overrides swapped in. The topology follows overrides unless it is
// TopologyInherit. Neither input is modified.
func MergeRendererSets(base, overrides RendererSet) RendererSet {
	out := base
	if overrides.Topology != TopologyInherit {
		out.Topology = overrides.Topology
	}
	if overrides.Background != nil {
		out.Background = overrides.Background
	}
	if overrides.Grid != nil {
		out.Grid = overrides.Grid
	}
	if overrides.Entity != nil {
		out.Entity = overrides.Entity
	}
	if overrides.Particle != nil {
		out.Particle = overrides.Particle
	}
	if overrides.Decoration != nil {
		out.Decoration = overrides.Decoration
	}
	if overrides.Ripple != nil {
		out.Ripple = overrides.Ripple
	}
	if overrides.Focal != nil {
		out.Focal = overrides.Focal
	}
	return out
}

// RendererFactory builds a fresh RendererSet bound to a world. Factories
// run on every theme switch so a new set never shares disposed state with
// a previous activation.
type RendererFactory func(w *World) RendererSet

// RendererRegistry maps theme names to factories. Each world owns its own
// registry; registration and lookup happen on the game loop only.
type RendererRegistry struct {
	factories map[string]RendererFactory
	names     []string
}

func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{factories: make(map[string]RendererFactory)}
}

// Register installs factory under name, replacing any previous entry.
func (r *RendererRegistry) Register(name string, factory RendererFactory) {
	if _, exists := r.factories[name]; !exists {
		r.names = append(r.names, name)
	}
	r.factories[name] = factory
}

// Themes lists registered theme names in registration order.
func (r *RendererRegistry) Themes() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *RendererRegistry) lookup(name string) (RendererFactory, bool) {
	f, ok := r.factories[name]
	return f, ok
}
