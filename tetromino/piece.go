package tetromino

import (
	"fmt"
	"math"
)

const (
	// DefaultTileSize is the pixel size of one tile.
	DefaultTileSize = 18

	SpawnColumn   = 8
	PreviewColumn = 12
	PreviewRow    = 0
	PocketColumn  = 13
	PocketRow     = 24

	// HiddenRows are the spawn rows above the visible field. Cells there are
	// not drawn unless the piece sits in a display slot.
	HiddenRows = 3

	// Anchors at or left of this column are kicked right, others left.
	kickPivot = 9
	maxKicks  = 4
)

// Axis selects the coordinate a move applies to.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Direction is the sign of a move along an axis.
type Direction int

const (
	Minus Direction = -1
	Plus  Direction = 1
)

// Rotation is the turning direction of a rotate command.
type Rotation uint8

const (
	Clockwise Rotation = iota
	CounterClockwise
)

func (r Rotation) step(index uint8) uint8 {
	if r == Clockwise {
		if index < 3 {
			return index + 1
		}
		return 0
	}
	if index > 0 {
		return index - 1
	}
	return 3
}

// Piece is one falling piece instance. The zero value is not usable; create
// pieces with New.
type Piece struct {
	shape    Shape
	x, y     uint32
	tileSize uint32
	rotation uint8
	layout   Layout
	tiles    [4]Coord
	removed  [4]bool
	held     bool
	active   bool
	overlap  OverlapPolicy
}

// Option configures a piece at construction.
type Option func(*Piece)

// WithTileSize sets the pixel size of a tile.
func WithTileSize(size uint32) Option {
	return func(p *Piece) {
		p.tileSize = size
	}
}

// WithOverlapPolicy replaces RowScanPolicy as the rule for rotations that
// end on top of locked cells. A nil policy keeps the default.
func WithOverlapPolicy(policy OverlapPolicy) Option {
	return func(p *Piece) {
		if policy == nil {
			policy = RowScanPolicy
		}
		p.overlap = policy
	}
}

// New spawns a piece of the given shape at the spawn anchor with rotation 0.
// The returned piece is active, not held, and its tiles are projected.
func New(shape Shape, opts ...Option) *Piece {
	if !shape.Valid() {
		panic(fmt.Sprintf("tetromino: unknown shape %d", shape))
	}

	p := &Piece{
		shape:    shape,
		x:        SpawnColumn,
		tileSize: DefaultTileSize,
		layout:   shape.Layout(),
		active:   true,
		overlap:  RowScanPolicy,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Project()
	return p
}

// Shape returns the piece kind.
func (p *Piece) Shape() Shape { return p.shape }

// Rotation returns the rotation index, 0 through 3.
func (p *Piece) Rotation() int { return int(p.rotation) }

// Layout returns the grid indices of the current orientation. Deleted tiles
// read as 0.
func (p *Piece) Layout() Layout { return p.layout }

// Tiles returns the tile positions as of the last Project.
func (p *Piece) Tiles() [4]Coord { return p.tiles }

// TileSize returns the pixel size of one tile.
func (p *Piece) TileSize() uint32 { return p.tileSize }

// IsActive reports whether the piece still falls.
func (p *Piece) IsActive() bool { return p.active }

// IsHeld reports whether the piece sits in the preview or pocket slot.
func (p *Piece) IsHeld() bool { return p.held }

// Anchor returns the grid column and row of the piece's 4x4 box.
func (p *Piece) Anchor() (x, y uint32) { return p.x, p.y }

// Deactivate locks the piece. Use it when the piece comes to rest on the
// stack rather than on the floor.
func (p *Piece) Deactivate() {
	p.active = false
}

// SetDefaultPos moves the piece back to the spawn anchor in its spawn layout
// and takes it out of any display slot. Tiles are not reprojected; call
// Project before reading them.
func (p *Piece) SetDefaultPos() {
	p.x, p.y = SpawnColumn, 0
	p.rotation = 0
	p.held = false
	p.layout = p.shape.Layout()
}

// SetForNext parks the piece in the next-piece preview slot.
func (p *Piece) SetForNext() {
	p.x, p.y = PreviewColumn, PreviewRow
	p.rotation = 0
	p.held = true
	p.layout = p.shape.Layout()
}

// SetToPocket parks the piece in the hold slot. The held flag is left as is.
func (p *Piece) SetToPocket() {
	p.x, p.y = PocketColumn, PocketRow
	p.rotation = 0
	p.layout = p.shape.Layout()
}

// Project recomputes the tile pixel positions from the anchor and layout.
func (p *Piece) Project() {
	p.tiles = p.projected()
}

func (p *Piece) projected() [4]Coord {
	var tiles [4]Coord
	for i := range p.layout {
		if p.removed[i] {
			continue
		}
		col, row := p.layout.Cell(i)
		tiles[i] = Coord{
			X: p.tileSize * (p.x + col),
			Y: p.tileSize * (p.y + row),
		}
	}
	return tiles
}

// Move shifts the anchor by steps*dir along axis. If the shifted tiles hit the
// frame the anchor is restored. Locked cells are not consulted; see Overlaps.
// A move that would take the anchor below zero counts as a frame hit.
func (p *Piece) Move(steps int, dir Direction, axis Axis, b Bounds) {
	var coord *uint32
	switch axis {
	case AxisX:
		coord = &p.x
	case AxisY:
		coord = &p.y
	default:
		panic(fmt.Sprintf("tetromino: invalid axis %d", axis))
	}

	prevX, prevY := p.x, p.y
	next := int64(*coord) + int64(steps)*int64(dir)
	if next >= 0 && next <= math.MaxUint32 {
		*coord = uint32(next)
		p.Project()
		if p.CollidesWithFrame(b) {
			p.x, p.y = prevX, prevY
		}
	}
	p.Project()
}

// Rotate turns the piece one orientation in direction r. A rotation that
// pushes the piece through a side wall is kicked horizontally toward the
// middle of the field until the frame is clear. The rotation is undone, and
// false returned, when a kick would land on locked cells, when only the floor
// is hit, when kicking does not clear the frame, or when the overlap policy
// refuses the final position.
func (p *Piece) Rotate(r Rotation, occ Occupancy, b Bounds) bool {
	prevRotation, prevX := p.rotation, p.x

	p.rotation = r.step(p.rotation)
	p.layout = p.shape.Rotations()[p.rotation]
	p.Project()

	for kicks := 0; ; kicks++ {
		hit := p.frameCheck(b)
		if hit == frameClear {
			break
		}
		if p.Overlaps(occ) || hit == frameFloor || kicks == maxKicks {
			p.revert(prevRotation, prevX)
			return false
		}
		if p.x <= kickPivot {
			p.x++
		} else {
			p.x--
		}
		p.Project()
	}

	if p.Overlaps(occ) && !p.overlap(p.liveTiles(), occ) {
		p.revert(prevRotation, prevX)
		return false
	}
	return true
}

func (p *Piece) revert(rotation uint8, x uint32) {
	p.x = x
	p.rotation = rotation
	p.layout = p.shape.Rotations()[rotation]
	p.Project()
}

// DeleteTile removes the tile at c from the piece, used when a cleared row
// takes part of a locked piece with it. Unknown coordinates are ignored.
func (p *Piece) DeleteTile(c Coord) {
	for i, t := range p.tiles {
		if t == c && !p.removed[i] {
			p.tiles[i] = Coord{}
			p.layout[i] = 0
			p.removed[i] = true
			return
		}
	}
}

// Remaining returns the number of tiles not removed by DeleteTile.
func (p *Piece) Remaining() int {
	n := 0
	for _, r := range p.removed {
		if !r {
			n++
		}
	}
	return n
}

// Removed reports whether tile slot i was removed by DeleteTile.
func (p *Piece) Removed(i int) bool {
	return p.removed[i]
}
