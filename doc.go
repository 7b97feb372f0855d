// Package glade is an isometric world renderer for [Ebitengine].
//
// Glade draws themed 2.5D scenes: host-supplied entities (buildings,
// cottages, anything with a grid position) are laid out on city blocks or a
// road network, depth-sorted, cached as offscreen bitmaps, and drawn with
// procedural roads, decorations, ambient walkers, and interaction ripples.
//
// # Quick start
//
// Create a [World] from a [Config], feed it entities, and drive it from an
// [ebiten.Game]:
//
//	world, err := glade.NewWorld(glade.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	world.UpdateEntityPositions([]glade.WorldEntity{
//		{ID: "hq", Pos: glade.GridPos{X: 2, Y: 3}, Level: 2, StyleSeed: 7, ConstructionProgress: 1},
//	})
//
//	type Game struct{ world *glade.World }
//
//	func (g *Game) Update() error              { return g.world.Update() }
//	func (g *Game) Draw(s *ebiten.Image)       { g.world.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Themes
//
// A theme is a [RendererSet]: one renderer per layer role (background,
// grid, entities, decorations, particles, ripples) plus a layout topology.
// Three themes ship built in: "city" (block lattice with roads), "village"
// (road network with walkers), and "nebula" (the city under a starfield).
// Hosts register their own with [RendererRegistry.Register] and switch at
// runtime with [World.SetTheme]; [MergeRendererSets] builds variants that
// override only a few roles.
//
// Art is procedural by default. A host can skin entities by loading images
// into the world's [AssetStore] under the theme's asset names; unresolved
// names fall back to the procedural art, and [DrawPlaceholder] gives custom
// sets the same no-blank-hole guarantee.
//
// # Layout and caching
//
// The world owns the derived state: a [CityBlockSystem] or
// [RoadNetworkBuilder] resolves entity positions into a street plan, and a
// [RenderCacheManager] memoizes per-entity bitmaps keyed by id, level,
// style seed, and kind. Hosts only push entity lists and call
// [World.InvalidateCache] when an entity's look changes in place.
//
// Everything procedural derives from [PositionHash], so two runs of the
// same world draw the same scene.
//
// # ECS integration
//
// The glade/ecs submodule adapts [Donburi] worlds: tag entities with its
// component types and collect them into the renderer's entity list.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package glade
