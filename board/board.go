// Package board keeps the cells of locked pieces and clears completed rows.
// It satisfies tetromino.Occupancy so pieces can test rotations against it.
package board

import (
	"cmp"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetromino"
)

// Board maps tile pixel coordinates to the shape that locked there.
type Board struct {
	bounds   tetromino.Bounds
	tileSize uint32
	cells    *intmap.Map[uint64, tetromino.Shape]
	hooks    []func(tetromino.Coord)
}

// New creates an empty board for the given frame and tile size.
func New(bounds tetromino.Bounds, tileSize uint32) *Board {
	return &Board{
		bounds:   bounds,
		tileSize: tileSize,
		cells:    intmap.New[uint64, tetromino.Shape](256),
	}
}

func key(c tetromino.Coord) uint64 {
	return uint64(c.X)<<32 | uint64(c.Y)
}

func coordOf(k uint64) tetromino.Coord {
	return tetromino.Coord{X: uint32(k >> 32), Y: uint32(k)}
}

// Bounds returns the playfield frame.
func (b *Board) Bounds() tetromino.Bounds {
	return b.bounds
}

// TileSize returns the pixel size of one cell.
func (b *Board) TileSize() uint32 {
	return b.tileSize
}

// Occupied reports whether a locked cell sits at c.
func (b *Board) Occupied(c tetromino.Coord) bool {
	return b.cells.Has(key(c))
}

// Occupant returns the shape that locked the cell at c.
func (b *Board) Occupant(c tetromino.Coord) (tetromino.Shape, bool) {
	return b.cells.Get(key(c))
}

// Len returns the number of locked cells.
func (b *Board) Len() int {
	return b.cells.Len()
}

// Columns returns how many cells fit between the side walls.
func (b *Board) Columns() int {
	first := (b.bounds.Left/b.tileSize + 1) * b.tileSize
	if b.bounds.Right <= first {
		return 0
	}
	last := (b.bounds.Right - 1) / b.tileSize * b.tileSize
	return int((last-first)/b.tileSize) + 1
}

// Cells iterates over every locked cell in no particular order.
func (b *Board) Cells() iter.Seq2[tetromino.Coord, tetromino.Shape] {
	return func(yield func(tetromino.Coord, tetromino.Shape) bool) {
		b.cells.ForEach(func(k uint64, shape tetromino.Shape) bool {
			return yield(coordOf(k), shape)
		})
	}
}

// Lock takes ownership of the remaining tiles of p. Pieces in a display slot
// never reach the board. It returns the number of cells stored.
func (b *Board) Lock(p *tetromino.Piece) int {
	if p.IsHeld() {
		return 0
	}

	stored := 0
	for i, t := range p.Tiles() {
		if p.Removed(i) {
			continue
		}
		b.cells.Put(key(t), p.Shape())
		stored++
	}
	return stored
}

// Place stores a single cell, replacing any occupant.
func (b *Board) Place(c tetromino.Coord, shape tetromino.Shape) {
	b.cells.Put(key(c), shape)
}

// OnVacate registers fn to be told about every cell removed from the board.
func (b *Board) OnVacate(fn func(tetromino.Coord)) {
	b.hooks = append(b.hooks, fn)
}

// Vacate removes the cell at c and notifies the vacate hooks. It reports
// whether a cell was there.
func (b *Board) Vacate(c tetromino.Coord) bool {
	if !b.cells.Del(key(c)) {
		return false
	}
	for _, fn := range b.hooks {
		fn(c)
	}
	return true
}

// FullRows returns the pixel Y of every row whose playable columns are all
// occupied, in ascending order.
func (b *Board) FullRows() []uint32 {
	columns := b.Columns()
	if columns == 0 {
		return nil
	}

	counts := make(map[uint32]int)
	b.cells.ForEach(func(k uint64, _ tetromino.Shape) bool {
		c := coordOf(k)
		if c.X > b.bounds.Left && c.X < b.bounds.Right {
			counts[c.Y]++
		}
		return true
	})

	var rows []uint32
	for y, n := range counts {
		if n >= columns {
			rows = append(rows, y)
		}
	}
	slices.Sort(rows)
	return rows
}

// ClearRows vacates every cell on the given rows and drops the cells above
// each cleared row by one tile. It returns the vacated coordinates.
func (b *Board) ClearRows(rows []uint32) []tetromino.Coord {
	if len(rows) == 0 {
		return nil
	}

	var vacated []tetromino.Coord
	b.cells.ForEach(func(k uint64, _ tetromino.Shape) bool {
		c := coordOf(k)
		if slices.Contains(rows, c.Y) {
			vacated = append(vacated, c)
		}
		return true
	})
	slices.SortFunc(vacated, func(a, c tetromino.Coord) int {
		if a.Y != c.Y {
			return cmp.Compare(a.Y, c.Y)
		}
		return cmp.Compare(a.X, c.X)
	})

	for _, c := range vacated {
		b.Vacate(c)
	}

	type cell struct {
		at    tetromino.Coord
		shape tetromino.Shape
	}
	var survivors []cell
	b.cells.ForEach(func(k uint64, shape tetromino.Shape) bool {
		survivors = append(survivors, cell{at: coordOf(k), shape: shape})
		return true
	})

	b.cells.Clear()
	for _, s := range survivors {
		drop := uint32(0)
		for _, y := range rows {
			if y > s.at.Y {
				drop += b.tileSize
			}
		}
		s.at.Y += drop
		b.cells.Put(key(s.at), s.shape)
	}

	return vacated
}

// Reset removes every cell without notifying the vacate hooks.
func (b *Board) Reset() {
	b.cells.Clear()
}

// Draw hands every visible locked cell to d, stopping at the first error.
func (b *Board) Draw(d tetromino.Drawer) error {
	hidden := tetromino.HiddenRows * b.tileSize

	var err error
	b.cells.ForEach(func(k uint64, shape tetromino.Shape) bool {
		c := coordOf(k)
		if c.Y < hidden {
			return true
		}
		err = d.DrawRegion(tetromino.SourceRect(shape, b.tileSize), tetromino.TileRect(c, b.tileSize))
		return err == nil
	})
	return err
}
