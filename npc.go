package glade

import (
	"math"
	"math/rand"
)

const (
	// npcArriveEpsilon is the arrival radius around a walker's target.
	npcArriveEpsilon = 0.05
	// npcFrameInterval is the wall-clock seconds between walk-cycle frames.
	// Animation runs on this clock even for walkers that cannot move.
	npcFrameInterval = 0.25
	// npcVariants is the number of walker looks a theme can draw.
	npcVariants = 4
)

// NPCSystem drives ambient walkers over the drivable road cells. Population
// follows the road network size; the system goes quiet when the network is
// too small to justify foot traffic.
type NPCSystem struct {
	cellsPer int
	maxCount int
	minCells int
	speed    float64
	rng      *rand.Rand

	npcs      []NPC
	drivable  []GridPos
	animClock float64
}

func NewNPCSystem(cfg Config, rng *rand.Rand) *NPCSystem {
	return &NPCSystem{
		cellsPer: cfg.NPCCellsPer,
		maxCount: cfg.NPCMaxCount,
		minCells: cfg.NPCMinCells,
		speed:    cfg.NPCSpeed,
		rng:      rng,
	}
}

// Reseed replaces the walker population for a new drivable set. One walker
// spawns per cellsPer road cells, capped at maxCount; below minCells the
// population is zero.
func (s *NPCSystem) Reseed(drivable []GridPos) {
	s.drivable = drivable
	s.npcs = s.npcs[:0]
	if len(drivable) < s.minCells {
		return
	}
	n := min(len(drivable)/s.cellsPer, s.maxCount)
	for i := 0; i < n; i++ {
		s.npcs = append(s.npcs, NPC{
			Pos:     s.pickCell(),
			Target:  s.pickCell(),
			Dir:     DirDown,
			Variant: s.rng.Intn(npcVariants),
		})
	}
}

// NPCs returns the live walkers. The slice is reused across Reseed calls.
func (s *NPCSystem) NPCs() []NPC {
	return s.npcs
}

// Update advances every walker by dt seconds. A walker within the arrival
// epsilon snaps to its target and draws a fresh one; otherwise it moves
// straight toward the target at fixed speed. Facing follows the axis with
// the larger remaining distance, ties facing horizontal.
func (s *NPCSystem) Update(dt float64) {
	if len(s.npcs) == 0 {
		return
	}
	frames := 0
	s.animClock += dt
	for s.animClock >= npcFrameInterval {
		s.animClock -= npcFrameInterval
		frames++
	}

	for i := range s.npcs {
		npc := &s.npcs[i]
		npc.Frame += frames

		dx := npc.Target.X - npc.Pos.X
		dy := npc.Target.Y - npc.Pos.Y
		dist := math.Hypot(dx, dy)
		if dist < npcArriveEpsilon {
			npc.Pos = npc.Target
			npc.Target = s.pickCell()
			continue
		}

		if math.Abs(dx) >= math.Abs(dy) {
			if dx < 0 {
				npc.Dir = DirLeft
			} else {
				npc.Dir = DirRight
			}
		} else {
			if dy < 0 {
				npc.Dir = DirUp
			} else {
				npc.Dir = DirDown
			}
		}

		step := s.speed * dt
		if step >= dist {
			npc.Pos = npc.Target
			continue
		}
		npc.Pos.X += dx / dist * step
		npc.Pos.Y += dy / dist * step
	}
}

func (s *NPCSystem) pickCell() GridPos {
	return s.drivable[s.rng.Intn(len(s.drivable))]
}
