package glade

import "strconv"

// cell addresses one integer cell of the logical plane. Road sets and
// occupancy sweeps key on it.
type cell struct {
	x, y int
}

func (c cell) grid() GridPos {
	return GridPos{X: float64(c.x), Y: float64(c.y)}
}

func blockKey(b BlockPos) string {
	return strconv.Itoa(b.X) + "," + strconv.Itoa(b.Y)
}

// Neighbor bitmask for road classification.
const (
	roadArmUp = 1 << iota
	roadArmDown
	roadArmLeft
	roadArmRight
)

// roadCellTypes maps the 4-neighbor connectivity mask to a piece, indexed
// by present arms. Isolated cells fall into the cross bucket.
var roadCellTypes = [16]RoadType{
	RoadCross,     // no arms
	RoadEndDown,   // up
	RoadEndUp,     // down
	RoadStraightV, // up down
	RoadEndRight,  // left
	RoadCornerBR,  // up left
	RoadCornerTR,  // down left
	RoadTRight,    // up down left
	RoadEndLeft,   // right
	RoadCornerBL,  // up right
	RoadCornerTL,  // down right
	RoadTLeft,     // up down right
	RoadStraightH, // left right
	RoadTDown,     // up left right
	RoadTUp,       // down left right
	RoadCross,     // all arms
}

// classifyRoadCell picks the road piece for a cell from which of its four
// axis-neighbors connect to the network. Both layout topologies share this
// rule; they differ only in what counts as connected.
func classifyRoadCell(up, down, left, right bool) RoadType {
	mask := 0
	if up {
		mask |= roadArmUp
	}
	if down {
		mask |= roadArmDown
	}
	if left {
		mask |= roadArmLeft
	}
	if right {
		mask |= roadArmRight
	}
	return roadCellTypes[mask]
}
