package game

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/tetromino"
)

// Commands buffers board mutations requested during a frame. They are applied
// after every system has run so no system sees a half-cleared board.
type Commands struct {
	clears  [][]uint32
	vacates []tetromino.Coord
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

// Defer queues a function to run after the board mutations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Vacate queues the removal of a single cell.
func (c *Commands) Vacate(at tetromino.Coord) {
	c.vacates = append(c.vacates, at)
}

// ClearRows queues the removal of whole rows, dropping the cells above.
func (c *Commands) ClearRows(rows []uint32) {
	c.clears = append(c.clears, rows)
}

// Pending reports how many operations are waiting for Flush.
func (c *Commands) Pending() int {
	return len(c.clears) + len(c.vacates) + len(c.defers)
}

// Flush applies all queued operations to b, resetting the buffer state.
// Single cells go first, then row clears, then deferred functions.
func (c *Commands) Flush(b *board.Board) {
	for _, at := range c.vacates {
		b.Vacate(at)
	}

	for _, rows := range c.clears {
		b.ClearRows(rows)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.clears = c.clears[:0]
	c.vacates = c.vacates[:0]
	c.defers = c.defers[:0]
}
