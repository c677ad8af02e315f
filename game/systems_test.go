package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatSource deals the same shape forever.
type repeatSource tetromino.Shape

func (r repeatSource) Next() tetromino.Shape { return tetromino.Shape(r) }

const bottom = 450

func newTestGame(t *testing.T, shape tetromino.Shape) (*game.State, *game.Scheduler) {
	t.Helper()
	state, scheduler := game.NewGame(game.DefaultConfig())
	state.Source = repeatSource(shape)
	scheduler.Once(0)
	require.NotNil(t, state.Current)
	return state, scheduler
}

func anchor(p *tetromino.Piece) [2]uint32 {
	x, y := p.Anchor()
	return [2]uint32{x, y}
}

func TestSpawn(t *testing.T) {
	state, _ := newTestGame(t, tetromino.I)

	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 0}, anchor(state.Current))
	assert.True(t, state.Current.IsActive())
	assert.False(t, state.Current.IsHeld())

	require.NotNil(t, state.Next)
	assert.Equal(t, [2]uint32{tetromino.PreviewColumn, tetromino.PreviewRow}, anchor(state.Next))
	assert.True(t, state.Next.IsHeld())
	assert.Equal(t, 1, state.Counters.Spawned)
	assert.False(t, state.GameOver)
}

func TestGravity(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.T)
	require.Equal(t, 500*time.Millisecond, state.Config.FallInterval)

	scheduler.Once(0.25)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 0}, anchor(state.Current))

	scheduler.Once(0.25)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 1}, anchor(state.Current))

	scheduler.Once(1.0)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 3}, anchor(state.Current))
}

func TestMoveActions(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.T)

	state.Push(game.MoveLeft)
	state.Push(game.MoveLeft)
	state.Push(game.SoftDrop)
	scheduler.Once(0)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn - 2, 1}, anchor(state.Current))

	state.Push(game.MoveRight)
	scheduler.Once(0)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn - 1, 1}, anchor(state.Current))
}

func TestMoveBlockedByStack(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.O)

	// O fills columns 2 and 3 of its box.
	x, _ := state.Current.Anchor()
	state.Board.Place(tetromino.Coord{X: (x + 1) * 18, Y: 0}, tetromino.Z)

	state.Push(game.MoveLeft)
	scheduler.Once(0)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 0}, anchor(state.Current))
}

func TestHardDropLocks(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.I)
	dropped := state.Current

	state.Push(game.HardDrop)
	scheduler.Once(0)

	assert.False(t, dropped.IsActive())
	assert.Nil(t, state.Current)
	assert.Same(t, dropped, state.Locked)
	assert.Equal(t, 1, state.Counters.Locked)
	assert.Equal(t, 4, state.Board.Len())
	for _, tile := range dropped.Tiles() {
		assert.Equal(t, uint32(bottom), tile.Y)
		assert.True(t, state.Board.Occupied(tile))
	}

	scheduler.Once(0)
	require.NotNil(t, state.Current)
	assert.Equal(t, 2, state.Counters.Spawned)
}

func TestPieceRestsOnStack(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.I)

	state.Push(game.HardDrop)
	scheduler.Once(0)
	scheduler.Once(0)

	second := state.Current
	state.Push(game.HardDrop)
	scheduler.Once(0)

	assert.Equal(t, 8, state.Board.Len())
	for _, tile := range second.Tiles() {
		assert.Equal(t, uint32(bottom-18), tile.Y)
	}
}

func TestLineClear(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.I)

	gap := map[uint32]bool{}
	for _, tile := range state.Current.Tiles() {
		gap[tile.X] = true
	}
	for x := uint32(18); x < state.Config.Bounds.Right; x += 18 {
		if !gap[x] {
			state.Board.Place(tetromino.Coord{X: x, Y: bottom}, tetromino.Z)
		}
	}
	state.Board.Place(tetromino.Coord{X: 18, Y: bottom - 18}, tetromino.S)

	locked := state.Current
	state.Push(game.HardDrop)
	scheduler.Once(0)

	assert.Equal(t, 1, state.Counters.LinesCleared)
	assert.Equal(t, 21, state.Counters.Vacated)
	assert.Equal(t, 1, state.Board.Len())
	assert.True(t, state.Board.Occupied(tetromino.Coord{X: 18, Y: bottom}))
	assert.Equal(t, 0, locked.Remaining())
}

func TestRotationCounters(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.T)

	state.Push(game.RotateCW)
	state.Push(game.RotateCCW)
	scheduler.Once(0)

	assert.Equal(t, 0, state.Current.Rotation())
	assert.Equal(t, 2, state.Counters.Rotations)
	assert.Equal(t, 0, state.Counters.RotationsRejected)
}

func TestRotationRejectedByStack(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.StrictRotation = true
	state, scheduler := game.NewGame(cfg)
	state.Source = repeatSource(tetromino.I)
	scheduler.Once(0)

	// I turns from row 1 into column 2 of its box.
	x, _ := state.Current.Anchor()
	state.Board.Place(tetromino.Coord{X: (x + 2) * 18, Y: 2 * 18}, tetromino.Z)

	state.Push(game.RotateCW)
	scheduler.Once(0)

	assert.Equal(t, 0, state.Current.Rotation())
	assert.Equal(t, 1, state.Counters.RotationsRejected)
}

func TestHold(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.S)
	first := state.Current

	state.Push(game.Hold)
	scheduler.Once(0)

	assert.Same(t, first, state.Held)
	assert.Nil(t, state.Current)
	assert.False(t, state.CanHold)
	assert.Equal(t, [2]uint32{tetromino.PocketColumn, tetromino.PocketRow}, anchor(first))

	scheduler.Once(0)
	second := state.Current
	require.NotNil(t, second)

	state.Push(game.Hold)
	scheduler.Once(0)
	assert.Same(t, second, state.Current, "hold is allowed once between locks")

	state.Push(game.HardDrop)
	scheduler.Once(0)
	assert.True(t, state.CanHold)

	scheduler.Once(0)
	third := state.Current
	state.Push(game.Hold)
	scheduler.Once(0)

	assert.Same(t, first, state.Current)
	assert.Same(t, third, state.Held)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 0}, anchor(first))
	assert.True(t, first.IsActive())
}

func TestHoldSwapOntoStackEndsGame(t *testing.T) {
	state, scheduler := newTestGame(t, tetromino.S)
	first := state.Current

	state.Push(game.Hold)
	scheduler.Once(0)
	scheduler.Once(0)
	require.NotNil(t, state.Current)

	state.Push(game.HardDrop)
	scheduler.Once(0)
	scheduler.Once(0)
	require.True(t, state.CanHold)

	// S at the spawn anchor covers (9,1) among its cells.
	state.Board.Place(tetromino.Coord{X: (tetromino.SpawnColumn + 1) * 18, Y: 18}, tetromino.O)
	state.Push(game.Hold)
	scheduler.Once(0)

	assert.Same(t, first, state.Current)
	assert.False(t, first.IsActive())
	assert.True(t, state.GameOver)
}

func TestGameOver(t *testing.T) {
	state, scheduler := game.NewGame(game.DefaultConfig())
	state.Source = repeatSource(tetromino.I)

	for x := uint32(tetromino.SpawnColumn); x < tetromino.SpawnColumn+4; x++ {
		state.Board.Place(tetromino.Coord{X: x * 18, Y: 18}, tetromino.O)
	}

	scheduler.Once(0)
	assert.True(t, state.GameOver)

	state.Push(game.MoveLeft)
	scheduler.Once(1)
	assert.Equal(t, [2]uint32{tetromino.SpawnColumn, 0}, anchor(state.Current))
	assert.Equal(t, 1, state.Counters.Spawned)

	state.Reset()
	assert.False(t, state.GameOver)
	assert.Zero(t, state.Board.Len())
	scheduler.Once(0)
	assert.NotNil(t, state.Current)
}

func TestBagConfigDealsEveryShape(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Bag = true
	cfg.Seed = 11
	state, scheduler := game.NewGame(cfg)

	seen := map[tetromino.Shape]int{}
	for len(seen) < 7 && state.Counters.Spawned < 7 {
		scheduler.Once(0)
		seen[state.Current.Shape()]++
		state.Push(game.HardDrop)
		scheduler.Once(0)
	}
	assert.Len(t, seen, 7)
}
