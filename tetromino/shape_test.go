package tetromino_test

import (
	"testing"

	"github.com/plus3/blockfall/tetromino"
	"github.com/stretchr/testify/assert"
)

func TestRotationTablesAreWellFormed(t *testing.T) {
	for _, shape := range tetromino.Shapes {
		t.Run(shape.String(), func(t *testing.T) {
			for r, layout := range shape.Rotations() {
				seen := make(map[uint8]bool)
				for _, idx := range layout {
					assert.LessOrEqual(t, idx, uint8(15), "rotation %d", r)
					assert.False(t, seen[idx], "rotation %d repeats cell %d", r, idx)
					seen[idx] = true
				}
				assert.Len(t, seen, 4)
			}
		})
	}
}

func TestRotationZeroMatchesSpawnLayout(t *testing.T) {
	for _, shape := range tetromino.Shapes {
		assert.Equal(t, shape.Layout(), shape.Rotations()[0], shape.String())
	}
}

func TestOIsRotationInvariant(t *testing.T) {
	for _, layout := range tetromino.O.Rotations() {
		assert.Equal(t, tetromino.Layout{2, 3, 6, 7}, layout)
	}
}

func TestTextureOffsets(t *testing.T) {
	seen := make(map[uint32]tetromino.Shape)
	for _, shape := range tetromino.Shapes {
		off := shape.TextureOffset()
		assert.Zero(t, off%18, shape.String())
		assert.Equal(t, uint32(shape.TextureSlot()*18), off)

		prev, dup := seen[off]
		assert.False(t, dup, "%s shares offset %d with %s", shape, off, prev)
		seen[off] = shape
	}

	assert.Equal(t, uint32(0), tetromino.J.TextureOffset())
	assert.Equal(t, uint32(18), tetromino.T.TextureOffset())
	assert.Equal(t, uint32(90), tetromino.I.TextureOffset())
	assert.Equal(t, uint32(108), tetromino.L.TextureOffset())
}

func TestLayoutCell(t *testing.T) {
	layout := tetromino.Layout{0, 7, 9, 15}

	tests := []struct {
		slot     int
		col, row uint32
	}{
		{0, 0, 0},
		{1, 3, 1},
		{2, 1, 2},
		{3, 3, 3},
	}

	for _, tt := range tests {
		col, row := layout.Cell(tt.slot)
		assert.Equal(t, tt.col, col)
		assert.Equal(t, tt.row, row)
	}
}

func TestShapeString(t *testing.T) {
	var names string
	for _, shape := range tetromino.Shapes {
		names += shape.String()
	}
	assert.Equal(t, "ITLJSZO", names)
	assert.False(t, tetromino.Shape(7).Valid())
	assert.Equal(t, "Shape(?)", tetromino.Shape(9).String())
}
