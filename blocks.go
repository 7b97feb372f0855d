package glade

import "math"

// CityBlockSystem partitions the logical plane into square blocks separated
// by road lanes and assigns at most one entity per block. cellSize is the
// stride of the lattice: roadWidth road cells followed by blockSize interior
// cells per axis.
type CityBlockSystem struct {
	blockSize int
	roadWidth int
	cellSize  int

	blocks   map[BlockPos]*CityBlock
	byEntity map[string]BlockPos

	dirty bool
	roads []RoadSegment
}

func NewCityBlockSystem(blockSize, roadWidth int) *CityBlockSystem {
	if blockSize < 1 {
		blockSize = 1
	}
	if roadWidth < 1 {
		roadWidth = 1
	}
	return &CityBlockSystem{
		blockSize: blockSize,
		roadWidth: roadWidth,
		cellSize:  blockSize + roadWidth,
		blocks:    make(map[BlockPos]*CityBlock),
		byEntity:  make(map[string]BlockPos),
		dirty:     true,
	}
}

// IsoToBlock maps a plane coordinate to the block containing it.
func (s *CityBlockSystem) IsoToBlock(x, y float64) BlockPos {
	cs := float64(s.cellSize)
	return BlockPos{
		X: int(math.Floor(x / cs)),
		Y: int(math.Floor(y / cs)),
	}
}

// BlockToIsoCenter returns the plane coordinate of the block's interior
// center, past the road lanes on its north and west edges.
func (s *CityBlockSystem) BlockToIsoCenter(bx, by int) GridPos {
	return GridPos{
		X: float64(bx*s.cellSize + s.roadWidth + s.blockSize/2),
		Y: float64(by*s.cellSize + s.roadWidth + s.blockSize/2),
	}
}

func (s *CityBlockSystem) occupied(b BlockPos) bool {
	blk, ok := s.blocks[b]
	return ok && blk.OccupantID != ""
}

// touch returns the block record, creating it on first use. Records are
// never deleted; releasing only clears the occupant.
func (s *CityBlockSystem) touch(b BlockPos) *CityBlock {
	if blk, ok := s.blocks[b]; ok {
		return blk
	}
	blk := &CityBlock{Block: b, CenterIso: s.BlockToIsoCenter(b.X, b.Y)}
	s.blocks[b] = blk
	return blk
}

func (s *CityBlockSystem) claim(b BlockPos, entityID string) *CityBlock {
	blk := s.touch(b)
	blk.OccupantID = entityID
	s.byEntity[entityID] = b
	s.dirty = true
	return blk
}

// AllocateBlock assigns the entity the block containing its preferred
// position, or the nearest free block found by scanning Chebyshev rings of
// growing radius. Past radius 10 the search gives up and returns the
// preferred block even though it is occupied; the overlap is visible but
// allocation never fails.
func (s *CityBlockSystem) AllocateBlock(entityID string, prefX, prefY float64) *CityBlock {
	pref := s.IsoToBlock(prefX, prefY)
	if !s.occupied(pref) {
		return s.claim(pref, entityID)
	}
	for radius := 1; radius <= 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if max(abs(dx), abs(dy)) != radius {
					continue
				}
				b := BlockPos{X: pref.X + dx, Y: pref.Y + dy}
				if !s.occupied(b) {
					return s.claim(b, entityID)
				}
			}
		}
	}
	// Search exhausted. The entity shares the preferred block with its
	// current occupant.
	s.byEntity[entityID] = pref
	return s.blocks[pref]
}

// ReleaseBlock clears the entity's occupancy. Unknown entities are a no-op.
func (s *CityBlockSystem) ReleaseBlock(entityID string) {
	for _, blk := range s.blocks {
		if blk.OccupantID == entityID {
			blk.OccupantID = ""
			s.dirty = true
			break
		}
	}
	delete(s.byEntity, entityID)
}

// EntityBlock returns the block allocated to the entity, if any.
func (s *CityBlockSystem) EntityBlock(entityID string) (*CityBlock, bool) {
	b, ok := s.byEntity[entityID]
	if !ok {
		return nil, false
	}
	return s.blocks[b], true
}

// SyncEntityPositions rebuilds occupancy from scratch: all blocks are
// released, then each entity allocates in list order. On conflicting
// preferences the earlier entity wins the preferred block.
func (s *CityBlockSystem) SyncEntityPositions(list []WorldEntity) {
	for _, blk := range s.blocks {
		blk.OccupantID = ""
	}
	s.byEntity = make(map[string]BlockPos, len(list))
	s.dirty = true
	for i := range list {
		s.AllocateBlock(list[i].ID, list[i].Pos.X, list[i].Pos.Y)
	}
}

// GenerateRoads lays road lanes along every block boundary of the occupied
// bounding box expanded by one block, including the closing south and east
// boundaries so the outer ring is a sealed rectangle, then classifies each
// cell by its connectivity. Results are cached until occupancy changes.
func (s *CityBlockSystem) GenerateRoads() []RoadSegment {
	if !s.dirty {
		return s.roads
	}
	s.dirty = false

	minB, maxB, occupied := s.occupiedBounds()
	if !occupied {
		s.roads = s.roads[:0]
		return s.roads
	}
	minB.X--
	minB.Y--
	maxB.X++
	maxB.Y++

	x0 := minB.X * s.cellSize
	y0 := minB.Y * s.cellSize
	x1 := (maxB.X+1)*s.cellSize + s.roadWidth - 1
	y1 := (maxB.Y+1)*s.cellSize + s.roadWidth - 1

	roadCells := make(map[cell]struct{})
	for by := minB.Y; by <= maxB.Y+1; by++ {
		for k := 0; k < s.roadWidth; k++ {
			y := by*s.cellSize + k
			for x := x0; x <= x1; x++ {
				roadCells[cell{x, y}] = struct{}{}
			}
		}
	}
	for bx := minB.X; bx <= maxB.X+1; bx++ {
		for k := 0; k < s.roadWidth; k++ {
			x := bx*s.cellSize + k
			for y := y0; y <= y1; y++ {
				roadCells[cell{x, y}] = struct{}{}
			}
		}
	}

	connects := func(c cell) bool {
		if _, ok := roadCells[c]; ok {
			return true
		}
		return s.isBuildingCell(c)
	}

	s.roads = s.roads[:0]
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := cell{x, y}
			if _, ok := roadCells[c]; !ok {
				continue
			}
			s.roads = append(s.roads, RoadSegment{
				Iso: c.grid(),
				Type: classifyRoadCell(
					connects(cell{x, y - 1}),
					connects(cell{x, y + 1}),
					connects(cell{x - 1, y}),
					connects(cell{x + 1, y}),
				),
			})
		}
	}
	return s.roads
}

func (s *CityBlockSystem) occupiedBounds() (minB, maxB BlockPos, ok bool) {
	for b, blk := range s.blocks {
		if blk.OccupantID == "" {
			continue
		}
		if !ok {
			minB, maxB = b, b
			ok = true
			continue
		}
		minB.X = min(minB.X, b.X)
		minB.Y = min(minB.Y, b.Y)
		maxB.X = max(maxB.X, b.X)
		maxB.Y = max(maxB.Y, b.Y)
	}
	return minB, maxB, ok
}

// isBuildingCell reports whether the cell lies in the interior of an
// occupied block, past the road lanes.
func (s *CityBlockSystem) isBuildingCell(c cell) bool {
	b := BlockPos{X: floorDiv(c.x, s.cellSize), Y: floorDiv(c.y, s.cellSize)}
	blk, ok := s.blocks[b]
	if !ok || blk.OccupantID == "" {
		return false
	}
	lx := c.x - b.X*s.cellSize
	ly := c.y - b.Y*s.cellSize
	return lx >= s.roadWidth && ly >= s.roadWidth
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
