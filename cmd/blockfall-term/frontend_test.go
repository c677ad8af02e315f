package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulation(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		action game.Action
		ok     bool
	}{
		{"left arrow", tcell.KeyLeft, 0, game.MoveLeft, true},
		{"right arrow", tcell.KeyRight, 0, game.MoveRight, true},
		{"down arrow", tcell.KeyDown, 0, game.SoftDrop, true},
		{"up arrow", tcell.KeyUp, 0, game.RotateCW, true},
		{"space", tcell.KeyRune, ' ', game.HardDrop, true},
		{"z", tcell.KeyRune, 'z', game.RotateCCW, true},
		{"X", tcell.KeyRune, 'X', game.RotateCW, true},
		{"c", tcell.KeyRune, 'c', game.Hold, true},
		{"vi left", tcell.KeyRune, 'h', game.MoveLeft, true},
		{"unbound rune", tcell.KeyRune, 'p', 0, false},
		{"unbound key", tcell.KeyTab, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := actionFor(tt.key, tt.r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.action, action)
			}
		})
	}
}

func TestFits(t *testing.T) {
	cfg := game.DefaultConfig()

	assert.True(t, NewFrontend(newSimulation(t, 60, 30), cfg).fits())
	assert.False(t, NewFrontend(newSimulation(t, 40, 30), cfg).fits())
	assert.False(t, NewFrontend(newSimulation(t, 60, 26), cfg).fits())
}

func TestDraw(t *testing.T) {
	screen := newSimulation(t, 60, 30)
	f := NewFrontend(screen, game.DefaultConfig())

	f.scheduler.Once(0)
	f.state.Push(game.HardDrop)
	f.scheduler.Once(0)
	require.NoError(t, f.draw())

	r, _, _, _ := screen.GetContent(0, 10)
	assert.Equal(t, '│', r)

	// The NEXT label sits above the preview panel, one tile right of the field.
	r, _, _, _ = screen.GetContent(46, 0)
	assert.Equal(t, 'N', r)

	filled := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 44; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == '█' {
				filled++
			}
		}
	}
	// four locked tiles, two cells each
	assert.Equal(t, 8, filled)
}
