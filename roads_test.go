package glade

import "testing"

func TestClassifyRoadCell(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		want                  RoadType
	}{
		{"isolated", false, false, false, false, RoadCross},
		{"all", true, true, true, true, RoadCross},

		{"vertical", true, true, false, false, RoadStraightV},
		{"horizontal", false, false, true, true, RoadStraightH},

		{"t-missing-up", false, true, true, true, RoadTUp},
		{"t-missing-down", true, false, true, true, RoadTDown},
		{"t-missing-left", true, true, false, true, RoadTLeft},
		{"t-missing-right", true, true, true, false, RoadTRight},

		{"corner-down-right", false, true, false, true, RoadCornerTL},
		{"corner-down-left", false, true, true, false, RoadCornerTR},
		{"corner-up-right", true, false, false, true, RoadCornerBL},
		{"corner-up-left", true, false, true, false, RoadCornerBR},

		{"end-from-below", false, true, false, false, RoadEndUp},
		{"end-from-above", true, false, false, false, RoadEndDown},
		{"end-from-right", false, false, false, true, RoadEndLeft},
		{"end-from-left", false, false, true, false, RoadEndRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRoadCell(tt.up, tt.down, tt.left, tt.right)
			if got != tt.want {
				t.Errorf("classifyRoadCell(%v, %v, %v, %v) = %v, want %v",
					tt.up, tt.down, tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestClassifyRoadCellCoversEveryMask(t *testing.T) {
	seen := map[RoadType]bool{}
	for mask := 0; mask < 16; mask++ {
		up := mask&roadArmUp != 0
		down := mask&roadArmDown != 0
		left := mask&roadArmLeft != 0
		right := mask&roadArmRight != 0
		seen[classifyRoadCell(up, down, left, right)] = true
	}
	// Every piece except the isolated-cell duplicate appears exactly once,
	// so all 15 road types must be reachable.
	if len(seen) != 15 {
		t.Errorf("classification reaches %d road types, want 15", len(seen))
	}
}

func TestBlockKey(t *testing.T) {
	tests := []struct {
		b    BlockPos
		want string
	}{
		{BlockPos{0, 0}, "0,0"},
		{BlockPos{3, -7}, "3,-7"},
		{BlockPos{-12, 40}, "-12,40"},
	}
	for _, tt := range tests {
		if got := blockKey(tt.b); got != tt.want {
			t.Errorf("blockKey(%v) = %q, want %q", tt.b, got, tt.want)
		}
	}
	blk := CityBlock{Block: BlockPos{2, 5}}
	if got := blk.Key(); got != "2,5" {
		t.Errorf("Key() = %q, want %q", got, "2,5")
	}
}
