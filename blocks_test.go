package glade

import "testing"

// Scenario lattice: 3-cell blocks with 1-cell roads, cellSize 4.
func testBlocks() *CityBlockSystem {
	return NewCityBlockSystem(3, 1)
}

func chebyshev(a, b BlockPos) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func TestIsoToBlock(t *testing.T) {
	s := testBlocks()
	tests := []struct {
		x, y float64
		want BlockPos
	}{
		{0, 0, BlockPos{0, 0}},
		{3.9, 3.9, BlockPos{0, 0}},
		{4, 0, BlockPos{1, 0}},
		{-0.1, -4, BlockPos{-1, -1}},
		{7.2, -4.5, BlockPos{1, -2}},
	}
	for _, tt := range tests {
		if got := s.IsoToBlock(tt.x, tt.y); got != tt.want {
			t.Errorf("IsoToBlock(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBlockToIsoCenter(t *testing.T) {
	s := testBlocks()
	tests := []struct {
		bx, by int
		want   GridPos
	}{
		{0, 0, GridPos{2, 2}},
		{1, 0, GridPos{6, 2}},
		{-1, 2, GridPos{-2, 10}},
	}
	for _, tt := range tests {
		if got := s.BlockToIsoCenter(tt.bx, tt.by); got != tt.want {
			t.Errorf("BlockToIsoCenter(%d, %d) = %v, want %v", tt.bx, tt.by, got, tt.want)
		}
	}
}

func TestAllocateBlockPreferredFree(t *testing.T) {
	s := testBlocks()
	blk := s.AllocateBlock("a", 5, 5)
	if blk.Block != (BlockPos{1, 1}) {
		t.Errorf("allocated %v, want {1 1}", blk.Block)
	}
	if blk.OccupantID != "a" {
		t.Errorf("occupant = %q, want %q", blk.OccupantID, "a")
	}
	if blk.CenterIso != (GridPos{6, 6}) {
		t.Errorf("center = %v, want {6 6}", blk.CenterIso)
	}
	got, ok := s.EntityBlock("a")
	if !ok || got != blk {
		t.Error("EntityBlock should return the allocated block")
	}
}

func TestAllocateBlockSpiralRadii(t *testing.T) {
	s := testBlocks()
	pref := BlockPos{0, 0}

	wantDist := []int{0, 1, 1, 1, 1, 1, 1, 1, 1, 2}
	seen := map[BlockPos]bool{}
	for i, want := range wantDist {
		blk := s.AllocateBlock(string(rune('a'+i)), 0, 0)
		if seen[blk.Block] {
			t.Fatalf("entity %d reused block %v", i, blk.Block)
		}
		seen[blk.Block] = true
		if got := chebyshev(blk.Block, pref); got != want {
			t.Errorf("entity %d at distance %d, want %d", i, got, want)
		}
	}
}

func TestAllocateBlockDeterministic(t *testing.T) {
	a := testBlocks()
	b := testBlocks()
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		got := a.AllocateBlock(id, 0, 0).Block
		want := b.AllocateBlock(id, 0, 0).Block
		if got != want {
			t.Fatalf("allocation %d diverged: %v vs %v", i, got, want)
		}
	}
}

func TestAllocateBlockExhaustionOverlap(t *testing.T) {
	s := testBlocks()
	// Rings 0 through 10 around the origin hold 21x21 = 441 blocks.
	for i := 0; i < 441; i++ {
		s.AllocateBlock(allocID(i), 0, 0)
	}
	first, ok := s.EntityBlock(allocID(0))
	if !ok || first.Block != (BlockPos{0, 0}) {
		t.Fatal("first entity should hold the preferred block")
	}

	blk := s.AllocateBlock("late", 0, 0)
	if blk != first {
		t.Errorf("exhausted search returned %v, want the preferred block", blk.Block)
	}
	if blk.OccupantID != allocID(0) {
		t.Errorf("occupant = %q, want %q (overlap must not steal the block)", blk.OccupantID, allocID(0))
	}
	shared, ok := s.EntityBlock("late")
	if !ok || shared != first {
		t.Error("overlapping entity should map to the preferred block")
	}
}

func allocID(i int) string {
	return "e" + string(rune('A'+i/26/26)) + string(rune('A'+i/26%26)) + string(rune('A'+i%26))
}

func TestReleaseBlock(t *testing.T) {
	s := testBlocks()
	s.AllocateBlock("a", 0, 0)
	s.AllocateBlock("b", 0, 0)

	s.ReleaseBlock("a")
	if _, ok := s.EntityBlock("a"); ok {
		t.Error("released entity should have no block")
	}
	if s.occupied(BlockPos{0, 0}) {
		t.Error("preferred block should be free after release")
	}

	blk := s.AllocateBlock("c", 0, 0)
	if blk.Block != (BlockPos{0, 0}) {
		t.Errorf("freed block not reused: got %v", blk.Block)
	}

	s.ReleaseBlock("nobody") // no-op
}

func TestSyncEntityPositionsOrder(t *testing.T) {
	s := testBlocks()
	a := WorldEntity{ID: "a", Pos: GridPos{0, 0}}
	b := WorldEntity{ID: "b", Pos: GridPos{0, 0}}

	s.SyncEntityPositions([]WorldEntity{a, b})
	blkA, _ := s.EntityBlock("a")
	if blkA.Block != (BlockPos{0, 0}) {
		t.Errorf("first entity at %v, want the preferred block", blkA.Block)
	}

	s.SyncEntityPositions([]WorldEntity{b, a})
	blkB, _ := s.EntityBlock("b")
	if blkB.Block != (BlockPos{0, 0}) {
		t.Errorf("after resync, first-listed entity at %v, want the preferred block", blkB.Block)
	}

	s.SyncEntityPositions([]WorldEntity{a})
	if _, ok := s.EntityBlock("b"); ok {
		t.Error("entity dropped from the list should lose its block")
	}
}

func TestGenerateRoadsSingleBlock(t *testing.T) {
	s := testBlocks()
	s.AllocateBlock("a", 1.5, 1.5) // block (0,0)

	segs := s.GenerateRoads()

	// Expanded box spans blocks (-1..1) on both axes; boundary lanes sit at
	// -4, 0, 4 and 8: four 13-cell lines per axis minus 16 crossings.
	if len(segs) != 88 {
		t.Fatalf("generated %d road cells, want 88", len(segs))
	}

	byPos := make(map[GridPos]RoadType, len(segs))
	for _, seg := range segs {
		if _, dup := byPos[seg.Iso]; dup {
			t.Fatalf("duplicate road cell at %v", seg.Iso)
		}
		byPos[seg.Iso] = seg.Type
	}

	tests := []struct {
		pos  GridPos
		want RoadType
	}{
		{GridPos{0, 0}, RoadCross},   // interior crossing
		{GridPos{4, 4}, RoadCross},   // interior crossing
		{GridPos{2, 0}, RoadTUp},     // building interior below joins
		{GridPos{1, 4}, RoadTDown},   // building interior above joins
		{GridPos{2, -4}, RoadStraightH},
		{GridPos{-4, 2}, RoadStraightV},
		{GridPos{-4, -4}, RoadCornerTL},
		{GridPos{8, -4}, RoadCornerTR},
		{GridPos{-4, 8}, RoadCornerBL},
		{GridPos{8, 8}, RoadCornerBR},
		{GridPos{4, 8}, RoadTDown}, // crossing on the sealed south boundary
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

	// The boundary lattice is sealed, so no cell dangles.
	for pos, typ := range byPos {
		switch typ {
		case RoadEndUp, RoadEndDown, RoadEndLeft, RoadEndRight:
			t.Errorf("unexpected dead end %v at %v", typ, pos)
		}
	}
}

func TestGenerateRoadsEmpty(t *testing.T) {
	s := testBlocks()
	if segs := s.GenerateRoads(); len(segs) != 0 {
		t.Errorf("empty world generated %d road cells", len(segs))
	}
}

func TestGenerateRoadsDirtyFlag(t *testing.T) {
	s := testBlocks()
	s.AllocateBlock("a", 0, 0)

	first := len(s.GenerateRoads())
	if first == 0 {
		t.Fatal("expected road cells")
	}
	if again := len(s.GenerateRoads()); again != first {
		t.Errorf("clean regeneration changed output: %d vs %d", again, first)
	}

	// New occupancy widens the bounding box.
	s.AllocateBlock("b", 20, 0)
	if after := len(s.GenerateRoads()); after <= first {
		t.Errorf("after growth got %d cells, want more than %d", after, first)
	}

	s.ReleaseBlock("b")
	if back := len(s.GenerateRoads()); back != first {
		t.Errorf("after release got %d cells, want %d", back, first)
	}
}
