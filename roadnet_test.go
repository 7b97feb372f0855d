package glade

import (
	"slices"
	"testing"
)

func netEntities(positions ...GridPos) []WorldEntity {
	list := make([]WorldEntity, len(positions))
	for i, p := range positions {
		list[i] = WorldEntity{ID: string(rune('a' + i)), Pos: p}
	}
	return list
}

func TestPrimMSTTriangle(t *testing.T) {
	edges := primMST([]cell{{0, 0}, {5, 0}, {0, 5}})
	want := []mstEdge{{from: 0, to: 1}, {from: 0, to: 2}}
	if !slices.Equal(edges, want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	total := 0
	anchors := []cell{{0, 0}, {5, 0}, {0, 5}}
	for _, e := range edges {
		total += manhattan(anchors[e.from], anchors[e.to])
	}
	if total != 10 {
		t.Errorf("total weight = %d, want 10", total)
	}
}

func TestPrimMSTChain(t *testing.T) {
	// The middle anchor joins first, then bridges to the far one.
	edges := primMST([]cell{{0, 0}, {10, 0}, {2, 0}})
	want := []mstEdge{{from: 0, to: 2}, {from: 2, to: 1}}
	if !slices.Equal(edges, want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
}

func TestPrimMSTDegenerate(t *testing.T) {
	if edges := primMST(nil); edges != nil {
		t.Errorf("no anchors: edges = %v, want nil", edges)
	}
	if edges := primMST([]cell{{3, 3}}); edges != nil {
		t.Errorf("one anchor: edges = %v, want nil", edges)
	}
}

func TestCarveL(t *testing.T) {
	set := make(map[cell]struct{})
	carveL(set, cell{1, 1}, cell{4, 3})
	// Row 1 from x=1..4, then column 4 from y=1..3.
	want := []cell{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {4, 2}, {4, 3}}
	if len(set) != len(want) {
		t.Fatalf("carved %d cells, want %d", len(set), len(want))
	}
	for _, c := range want {
		if _, ok := set[c]; !ok {
			t.Errorf("missing carved cell %v", c)
		}
	}
}

func TestRoadNetworkLayout(t *testing.T) {
	b := NewRoadNetworkBuilder()
	b.SyncEntityPositions(netEntities(GridPos{0, 0}, GridPos{5, 0}, GridPos{0, 5}))

	roads := b.Roads()
	if len(roads) != 11 {
		t.Fatalf("got %d road cells, want 11", len(roads))
	}

	byPos := make(map[GridPos]RoadType, len(roads))
	for _, seg := range roads {
		byPos[seg.Iso] = seg.Type
	}
	tests := []struct {
		pos  GridPos
		want RoadType
	}{
		{GridPos{0, 0}, RoadCornerTL}, // junction of both arms
		{GridPos{2, 0}, RoadStraightH},
		{GridPos{0, 2}, RoadStraightV},
		{GridPos{5, 0}, RoadEndRight}, // east tip
		{GridPos{0, 5}, RoadEndDown},  // south tip
	}
	for _, tt := range tests {
		got, ok := byPos[tt.pos]
		if !ok {
			t.Errorf("no road cell at %v", tt.pos)
			continue
		}
		if got != tt.want {
			t.Errorf("cell %v = %v, want %v", tt.pos, got, tt.want)
		}
	}

	drivable := b.Drivable()
	if len(drivable) != len(roads) {
		t.Fatalf("drivable has %d cells, roads have %d", len(drivable), len(roads))
	}
	for _, p := range drivable {
		if _, ok := byPos[p]; !ok {
			t.Errorf("drivable cell %v is not a road cell", p)
		}
	}
}

func TestRoadNetworkDeterministic(t *testing.T) {
	mk := func() *RoadNetworkBuilder {
		b := NewRoadNetworkBuilder()
		b.SyncEntityPositions(netEntities(GridPos{0, 0}, GridPos{9, 2}, GridPos{3, 8}))
		return b
	}
	a, b := mk(), mk()
	if !slices.Equal(a.Roads(), b.Roads()) {
		t.Error("same anchors produced different road layouts")
	}
	if !slices.Equal(a.Decorations(), b.Decorations()) {
		t.Error("same anchors produced different decorations")
	}
	if !slices.Equal(a.Drivable(), b.Drivable()) {
		t.Error("same anchors produced different drivable sets")
	}
}

func TestRoadNetworkDecorations(t *testing.T) {
	b := NewRoadNetworkBuilder()
	entities := netEntities(GridPos{0, 0}, GridPos{12, 0}, GridPos{0, 12})
	b.SyncEntityPositions(entities)

	decos := b.Decorations()
	if len(decos) == 0 {
		t.Fatal("expected at least one decoration in the scan box")
	}

	roadCells := make(map[GridPos]bool)
	for _, seg := range b.Roads() {
		roadCells[seg.Iso] = true
	}
	for _, d := range decos {
		if roadCells[d.Pos] {
			t.Errorf("decoration on road cell %v", d.Pos)
		}
		for _, e := range entities {
			dx := abs(int(d.Pos.X) - int(e.Pos.X))
			dy := abs(int(d.Pos.Y) - int(e.Pos.Y))
			if max(dx, dy) <= decoBuffer {
				t.Errorf("decoration at %v inside the buffer of entity %s", d.Pos, e.ID)
			}
		}
		if d.Kind != DecoTree && d.Kind != DecoBush && d.Kind != DecoFlower {
			t.Errorf("decoration at %v has street kind %v", d.Pos, d.Kind)
		}
	}
}

func TestRoadNetworkRebuildOnSync(t *testing.T) {
	b := NewRoadNetworkBuilder()
	b.SyncEntityPositions(netEntities(GridPos{0, 0}, GridPos{5, 0}))
	first := len(b.Roads())
	if first != 6 {
		t.Fatalf("got %d road cells, want 6", first)
	}
	if again := len(b.Roads()); again != first {
		t.Errorf("clean rebuild changed output: %d vs %d", again, first)
	}

	b.SyncEntityPositions(netEntities(GridPos{0, 0}, GridPos{5, 0}, GridPos{0, 5}))
	if after := len(b.Roads()); after != 11 {
		t.Errorf("after sync got %d road cells, want 11", after)
	}
}

func TestRoadNetworkSingleAnchor(t *testing.T) {
	b := NewRoadNetworkBuilder()
	b.SyncEntityPositions(netEntities(GridPos{4, 4}))
	if got := len(b.Roads()); got != 0 {
		t.Errorf("single anchor produced %d road cells, want 0", got)
	}
	if got := len(b.Drivable()); got != 0 {
		t.Errorf("single anchor produced %d drivable cells, want 0", got)
	}
	if got := len(b.Decorations()); got != 0 {
		t.Errorf("single anchor produced %d decorations, want 0", got)
	}
}
