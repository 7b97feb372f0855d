package glade

import "math"

const (
	// decoMargin expands the network bounding box scanned for decorations.
	decoMargin = 3
	// decoBuffer keeps decorations this many cells clear of entity anchors.
	decoBuffer = 1
	// decoDensity is the hash threshold below which a cell grows a
	// decoration.
	decoDensity = 0.12
	// decoNatureKinds limits hash placement to the leading nature kinds;
	// street furniture is placed by themes, not by the builder.
	decoNatureKinds = 3
)

// RoadNetworkBuilder connects entity anchors with a minimum spanning tree of
// L-shaped paths and scatters deterministic decorations around the result.
// The whole network regenerates when the anchor set changes; nothing is
// patched incrementally.
type RoadNetworkBuilder struct {
	anchors []cell
	dirty   bool

	roadSet  map[cell]struct{}
	roads    []RoadSegment
	decos    []Decoration
	drivable []GridPos
}

func NewRoadNetworkBuilder() *RoadNetworkBuilder {
	return &RoadNetworkBuilder{roadSet: make(map[cell]struct{})}
}

// SyncEntityPositions replaces the anchor set. Entity positions snap to the
// nearest integer cell.
func (b *RoadNetworkBuilder) SyncEntityPositions(list []WorldEntity) {
	b.anchors = b.anchors[:0]
	for i := range list {
		b.anchors = append(b.anchors, cell{
			x: int(math.Round(list[i].Pos.X)),
			y: int(math.Round(list[i].Pos.Y)),
		})
	}
	b.dirty = true
}

// Roads returns the classified road cells, regenerating if stale.
func (b *RoadNetworkBuilder) Roads() []RoadSegment {
	b.rebuild()
	return b.roads
}

// Decorations returns the hash-placed decoration cells, regenerating if
// stale. The same anchor set always produces the same list.
func (b *RoadNetworkBuilder) Decorations() []Decoration {
	b.rebuild()
	return b.decos
}

// Drivable returns every road cell as a plane position, for seeding the
// walker simulation.
func (b *RoadNetworkBuilder) Drivable() []GridPos {
	b.rebuild()
	return b.drivable
}

func (b *RoadNetworkBuilder) rebuild() {
	if !b.dirty {
		return
	}
	b.dirty = false

	clear(b.roadSet)
	for _, e := range primMST(b.anchors) {
		carveL(b.roadSet, b.anchors[e.from], b.anchors[e.to])
	}

	b.roads = b.roads[:0]
	b.drivable = b.drivable[:0]
	b.decos = b.decos[:0]
	if len(b.roadSet) == 0 {
		return
	}

	minC, maxC := boundsOf(b.roadSet)
	isRoad := func(c cell) bool {
		_, ok := b.roadSet[c]
		return ok
	}
	for y := minC.y; y <= maxC.y; y++ {
		for x := minC.x; x <= maxC.x; x++ {
			c := cell{x, y}
			if !isRoad(c) {
				continue
			}
			b.roads = append(b.roads, RoadSegment{
				Iso: c.grid(),
				Type: classifyRoadCell(
					isRoad(cell{x, y - 1}),
					isRoad(cell{x, y + 1}),
					isRoad(cell{x - 1, y}),
					isRoad(cell{x + 1, y}),
				),
			})
			b.drivable = append(b.drivable, c.grid())
		}
	}

	blocked := make(map[cell]struct{}, len(b.anchors)*9)
	for _, a := range b.anchors {
		for dy := -decoBuffer; dy <= decoBuffer; dy++ {
			for dx := -decoBuffer; dx <= decoBuffer; dx++ {
				blocked[cell{a.x + dx, a.y + dy}] = struct{}{}
			}
		}
	}
	for y := minC.y - decoMargin; y <= maxC.y+decoMargin; y++ {
		for x := minC.x - decoMargin; x <= maxC.x+decoMargin; x++ {
			c := cell{x, y}
			if isRoad(c) {
				continue
			}
			if _, near := blocked[c]; near {
				continue
			}
			h := PositionHash(int64(x), int64(y))
			if HashFloat(h) >= decoDensity {
				continue
			}
			b.decos = append(b.decos, Decoration{
				Pos:  c.grid(),
				Kind: DecorationKind(h % decoNatureKinds),
				Seed: h,
			})
		}
	}
}

type mstEdge struct {
	from, to int
}

// primMST spans the anchors with Manhattan-weight edges. The frontier seeds
// at index 0 and each round takes the first minimal frontier-crossing edge
// in scan order.
func primMST(anchors []cell) []mstEdge {
	n := len(anchors)
	if n < 2 {
		return nil
	}
	inTree := make([]bool, n)
	inTree[0] = true
	edges := make([]mstEdge, 0, n-1)
	for len(edges) < n-1 {
		bestW := -1
		var best mstEdge
		for i := 0; i < n; i++ {
			if !inTree[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if inTree[j] {
					continue
				}
				w := manhattan(anchors[i], anchors[j])
				if bestW < 0 || w < bestW {
					bestW = w
					best = mstEdge{from: i, to: j}
				}
			}
		}
		inTree[best.to] = true
		edges = append(edges, best)
	}
	return edges
}

func manhattan(a, b cell) int {
	return abs(a.x-b.x) + abs(a.y-b.y)
}

// carveL marks the cells of an axis-aligned L between two anchors: along the
// source row to the target's column, then along that column to the target.
func carveL(set map[cell]struct{}, from, to cell) {
	for x := min(from.x, to.x); x <= max(from.x, to.x); x++ {
		set[cell{x: x, y: from.y}] = struct{}{}
	}
	for y := min(from.y, to.y); y <= max(from.y, to.y); y++ {
		set[cell{x: to.x, y: y}] = struct{}{}
	}
}

func boundsOf(set map[cell]struct{}) (minC, maxC cell) {
	first := true
	for c := range set {
		if first {
			minC, maxC = c, c
			first = false
			continue
		}
		minC.x = min(minC.x, c.x)
		minC.y = min(minC.y, c.y)
		maxC.x = max(maxC.x, c.x)
		maxC.y = max(maxC.y, c.y)
	}
	return minC, maxC
}
