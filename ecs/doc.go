// Package ecs provides ECS adapters for feeding glade from a Donburi world.
//
// Tag entities with [PositionComponent] and [RenderableComponent], then
// collect them each tick:
//
//	world.UpdateEntityPositions(ecs.CollectEntities(donburiWorld))
//
// Glade itself never imports Donburi; this submodule keeps the dependency
// optional.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
