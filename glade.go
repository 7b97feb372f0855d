package glade

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for screen-space positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color geometry.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Lerp maps t in [0, 1] onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// GridPos is a logical coordinate on the world's isometric plane. Layout math
// operates on whole cells; NPCs and animations may hold fractional positions.
type GridPos struct {
	X, Y float64
}

// BlockPos addresses a city block on the block lattice (see CityBlockSystem).
type BlockPos struct {
	X, Y int
}

// CameraState is the affine view applied during projection: a world-space
// offset plus a uniform scale. Zoom must be positive.
type CameraState struct {
	X, Y float64
	Zoom float64
}

// Entity level bounds. Levels outside this range render as the nearest bound.
const (
	MinLevel = 1
	MaxLevel = 4
)

// WorldEntity is a placed object (building, planet) supplied by the host.
// The renderer only reads it; ownership stays with the caller.
//
// ID must be unique within one world. ConstructionProgress goes 0 to 1 over
// the entity's build lifetime and entities below 1 render in an unfinished
// state. StyleSeed drives the deterministic per-entity palette.
type WorldEntity struct {
	ID                   string
	Pos                  GridPos
	Level                int
	ConstructionProgress float64
	StyleSeed            uint32
	Label                string
}

// CityBlock is one cell of the block lattice. A block holds at most one
// occupant. Blocks are created on first allocation touch and never deleted;
// releasing an entity only clears OccupantID.
type CityBlock struct {
	Block      BlockPos
	CenterIso  GridPos
	OccupantID string
}

// Key returns the block's stable string form, "bx,by".
func (b *CityBlock) Key() string {
	return blockKey(b.Block)
}

// RoadType classifies a road cell by which of its four axis-neighbors connect
// to it. T-junctions are named for the missing side, corners for the corner
// of a rectangular loop the piece would occupy (CornerTL joins the down and
// right arms), and dead-ends for their capped side (EndUp is entered from
// below).
type RoadType uint8

const (
	RoadStraightH RoadType = iota // left + right
	RoadStraightV                 // up + down
	RoadCross                     // all four arms
	RoadTUp                       // down + left + right (up missing)
	RoadTDown                     // up + left + right (down missing)
	RoadTLeft                     // up + down + right (left missing)
	RoadTRight                    // up + down + left (right missing)
	RoadCornerTL                  // down + right
	RoadCornerTR                  // down + left
	RoadCornerBL                  // up + right
	RoadCornerBR                  // up + left
	RoadEndUp                     // down only
	RoadEndDown                   // up only
	RoadEndLeft                   // right only
	RoadEndRight                  // left only
)

var roadTypeNames = [...]string{
	RoadStraightH: "straight-h",
	RoadStraightV: "straight-v",
	RoadCross:     "cross",
	RoadTUp:       "t-up",
	RoadTDown:     "t-down",
	RoadTLeft:     "t-left",
	RoadTRight:    "t-right",
	RoadCornerTL:  "corner-tl",
	RoadCornerTR:  "corner-tr",
	RoadCornerBL:  "corner-bl",
	RoadCornerBR:  "corner-br",
	RoadEndUp:     "end-u",
	RoadEndDown:   "end-d",
	RoadEndLeft:   "end-l",
	RoadEndRight:  "end-r",
}

func (t RoadType) String() string {
	if int(t) < len(roadTypeNames) {
		return roadTypeNames[t]
	}
	return "unknown"
}

// RoadSegment is one classified road cell. The full segment list is derived
// state: regenerated wholesale on each layout pass, never patched in place.
type RoadSegment struct {
	Iso  GridPos
	Type RoadType
}

// DecorationKind selects the sprite family for a decoration cell.
type DecorationKind uint8

const (
	DecoTree DecorationKind = iota
	DecoBush
	DecoFlower
	DecoLamp
	DecoBench

	decoKindCount = 5
)

var decoKindNames = [...]string{
	DecoTree:   "tree",
	DecoBush:   "bush",
	DecoFlower: "flower",
	DecoLamp:   "lamp",
	DecoBench:  "bench",
}

func (k DecorationKind) String() string {
	if int(k) < len(decoKindNames) {
		return decoKindNames[k]
	}
	return "unknown"
}

// Decoration is a procedurally placed ambient prop. Placement, kind, and Seed
// are pure functions of the cell position (see PositionHash); decorations are
// never persisted.
type Decoration struct {
	Pos  GridPos
	Kind DecorationKind
	Seed uint64
}

// Direction is a cardinal facing on the grid plane.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// NPC is one ambient walker. NPCs are ephemeral: the whole population is
// re-seeded whenever the drivable cell set changes.
type NPC struct {
	Pos     GridPos
	Target  GridPos
	Dir     Direction
	Frame   int
	Variant int
}

// Settings is the host-supplied bag of render toggles. SelectedID highlights
// one entity; empty means no selection.
type Settings struct {
	ShowGrid      bool
	ShowParticles bool
	ShowLabels    bool
	ShowGlow      bool
	SelectedID    string
}

// toRGBA converts a Color to a premultiplied color.RGBA-compatible value.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
