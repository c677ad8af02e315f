package tetromino

// Coord is the absolute pixel position of one tile.
type Coord struct {
	X, Y uint32
}

// Bounds is the playfield frame in pixels. A tile collides with the side
// walls when X <= Left or X >= Right and with the floor when Y >= Floor.
type Bounds struct {
	Left, Right, Floor uint32
}

// Occupancy answers whether a tile position is taken by a locked cell.
type Occupancy interface {
	Occupied(Coord) bool
}

// OverlapPolicy decides whether a rotation that ends with tiles overlapping
// locked cells is kept. tiles holds the live tiles of the rotated piece in
// tile order; at least one of them is occupied in occ.
type OverlapPolicy func(tiles []Coord, occ Occupancy) bool

// RowScanPolicy walks the tiles in order and refuses the rotation at the
// first tile that is free, or at any tile once the scan has stepped onto a
// second new row. The row tracker starts at row 0, so tiles on the top row
// do not count as a step. In practice only a piece buried in the stack on
// every tile is kept.
//
// TODO: replace with RejectAnyOverlap once the gameplay tests agree on the
// intended behavior for rotations into the stack.
func RowScanPolicy(tiles []Coord, occ Occupancy) bool {
	var rows int
	var lastY uint32
	for _, t := range tiles {
		if !occ.Occupied(t) || rows >= 2 {
			return false
		}
		if t.Y != lastY {
			rows++
			lastY = t.Y
		}
	}
	return true
}

// TwoHitRowPolicy keeps the rotation unless the first two overlapping tiles
// sit on different rows. A single overlapping tile, or two on the same row, is
// accepted even though the piece then overlaps the stack.
func TwoHitRowPolicy(tiles []Coord, occ Occupancy) bool {
	var hits []Coord
	for _, t := range tiles {
		if occ.Occupied(t) {
			hits = append(hits, t)
		}
	}
	if len(hits) < 2 {
		return true
	}
	return hits[0].Y == hits[1].Y
}

// RejectAnyOverlap refuses every rotation that overlaps a locked cell.
func RejectAnyOverlap(tiles []Coord, occ Occupancy) bool {
	return false
}

type frameHit uint8

const (
	frameClear frameHit = iota
	frameSide
	frameFloor
)

// frameCheck classifies the current tiles against b without touching the
// piece. A side hit on any tile wins over a floor hit so the caller knows a
// horizontal kick may still help.
func (p *Piece) frameCheck(b Bounds) frameHit {
	hit := frameClear
	for i, t := range p.tiles {
		if p.removed[i] {
			continue
		}
		if t.X <= b.Left || t.X >= b.Right {
			return frameSide
		}
		if t.Y >= b.Floor {
			hit = frameFloor
		}
	}
	return hit
}

// CollidesWithFrame reports whether any tile touches the side walls or the
// floor. A floor hit also deactivates the piece; this is how a falling piece
// locks on the bottom of the field.
func (p *Piece) CollidesWithFrame(b Bounds) bool {
	for i, t := range p.tiles {
		if p.removed[i] {
			continue
		}
		if t.X <= b.Left || t.X >= b.Right {
			return true
		} else if t.Y >= b.Floor {
			p.active = false
			return true
		}
	}
	return false
}

// Overlaps reports whether any tile sits on an occupied cell. Move never
// asks this itself; callers that want sideways or downward moves blocked by
// the stack check it after moving.
func (p *Piece) Overlaps(occ Occupancy) bool {
	if occ == nil {
		return false
	}
	for i, t := range p.tiles {
		if !p.removed[i] && occ.Occupied(t) {
			return true
		}
	}
	return false
}

func (p *Piece) liveTiles() []Coord {
	tiles := make([]Coord, 0, len(p.tiles))
	for i, t := range p.tiles {
		if !p.removed[i] {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
