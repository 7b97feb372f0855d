package ecs

import (
	"testing"

	"github.com/phanxgames/glade"

	"github.com/yohamta/donburi"
)

func TestCollectEntitiesEmpty(t *testing.T) {
	world := donburi.NewWorld()
	if got := CollectEntities(world); len(got) != 0 {
		t.Errorf("empty world collected %d entities", len(got))
	}
}

func TestCollectEntitiesMapsFields(t *testing.T) {
	world := donburi.NewWorld()
	entry := world.Entry(world.Create(PositionComponent, RenderableComponent))
	PositionComponent.SetValue(entry, Position{X: 2.5, Y: 3})
	RenderableComponent.SetValue(entry, Renderable{
		ID:                   "hq",
		Level:                2,
		ConstructionProgress: 0.75,
		StyleSeed:            99,
		Label:                "HQ",
	})

	got := CollectEntities(world)
	if len(got) != 1 {
		t.Fatalf("collected %d entities, want 1", len(got))
	}
	want := glade.WorldEntity{
		ID:                   "hq",
		Pos:                  glade.GridPos{X: 2.5, Y: 3},
		Level:                2,
		ConstructionProgress: 0.75,
		StyleSeed:            99,
		Label:                "HQ",
	}
	if got[0] != want {
		t.Errorf("collected %+v, want %+v", got[0], want)
	}
}

func TestCollectEntitiesRequiresBothComponents(t *testing.T) {
	world := donburi.NewWorld()

	full := world.Entry(world.Create(PositionComponent, RenderableComponent))
	PositionComponent.SetValue(full, Position{X: 1, Y: 1})
	RenderableComponent.SetValue(full, Renderable{ID: "a"})

	posOnly := world.Entry(world.Create(PositionComponent))
	PositionComponent.SetValue(posOnly, Position{X: 9, Y: 9})

	got := CollectEntities(world)
	if len(got) != 1 {
		t.Fatalf("collected %d entities, want 1", len(got))
	}
	if got[0].ID != "a" {
		t.Errorf("collected %q, want the fully tagged entity", got[0].ID)
	}
}
