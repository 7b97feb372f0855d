// Package ecs provides ECS adapters for glade.
package ecs

import (
	"github.com/phanxgames/glade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Position places an entity on the renderer's isometric plane.
type Position struct {
	X, Y float64
}

// Renderable carries everything glade needs to draw an entity besides its
// position. ID must be unique within the rendered world.
type Renderable struct {
	ID                   string
	Level                int
	ConstructionProgress float64
	StyleSeed            uint32
	Label                string
}

// Component types for glade-rendered entities. Attach both to any Donburi
// entity that should appear in the world.
var (
	PositionComponent   = donburi.NewComponentType[Position]()
	RenderableComponent = donburi.NewComponentType[Renderable]()
)

var renderQuery = donburi.NewQuery(filter.Contains(PositionComponent, RenderableComponent))

// CollectEntities gathers every entity carrying both components into the
// renderer's input form. The slice is freshly allocated and safe to hand
// straight to World.UpdateEntityPositions.
func CollectEntities(w donburi.World) []glade.WorldEntity {
	out := make([]glade.WorldEntity, 0, renderQuery.Count(w))
	renderQuery.Each(w, func(e *donburi.Entry) {
		pos := PositionComponent.Get(e)
		r := RenderableComponent.Get(e)
		out = append(out, glade.WorldEntity{
			ID:                   r.ID,
			Pos:                  glade.GridPos{X: pos.X, Y: pos.Y},
			Level:                r.Level,
			ConstructionProgress: r.ConstructionProgress,
			StyleSeed:            r.StyleSeed,
			Label:                r.Label,
		})
	})
	return out
}
