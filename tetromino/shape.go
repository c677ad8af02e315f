// Package tetromino implements the falling piece of a block-stacking game:
// the shape catalogue, the piece state machine with its rotation tables and
// wall-kick, and collision against the playfield frame and locked cells.
package tetromino

// Shape identifies one of the seven piece kinds.
type Shape uint8

const (
	I Shape = iota
	T
	L
	J
	S
	Z
	O
)

// Shapes lists every piece kind in catalogue order.
var Shapes = [...]Shape{I, T, L, J, S, Z, O}

// Layout marks the 4 occupied cells of a piece as indices into a row-major
// 4x4 grid (0..15).
type Layout [4]uint8

// Cell returns the column and row of the i-th occupied cell.
func (l Layout) Cell(i int) (col, row uint32) {
	return uint32(l[i] % 4), uint32(l[i] / 4)
}

const textureStride = 18

// Grid reference, for reading the tables below:
//
//	 0  1  2  3
//	 4  5  6  7
//	 8  9 10 11
//	12 13 14 15
var spawnLayouts = [...]Layout{
	I: {4, 5, 6, 7},
	T: {1, 4, 5, 6},
	L: {3, 5, 6, 7},
	J: {0, 4, 5, 6},
	S: {2, 3, 5, 6},
	Z: {0, 1, 5, 6},
	O: {2, 3, 6, 7},
}

// Hand-tuned per orientation; these are not a rotation transform of the spawn
// layout and must stay as literal tables.
var rotationLayouts = [...][4]Layout{
	I: {{4, 5, 6, 7}, {2, 6, 10, 14}, {8, 9, 10, 11}, {1, 5, 9, 13}},
	T: {{1, 4, 5, 6}, {1, 5, 6, 9}, {4, 5, 6, 9}, {1, 4, 5, 9}},
	L: {{3, 5, 6, 7}, {2, 6, 10, 11}, {5, 6, 7, 9}, {1, 2, 6, 10}},
	J: {{0, 4, 5, 6}, {1, 2, 5, 9}, {4, 5, 6, 10}, {1, 5, 8, 9}},
	S: {{2, 3, 5, 6}, {2, 6, 7, 11}, {6, 7, 9, 10}, {1, 5, 6, 10}},
	Z: {{0, 1, 5, 6}, {2, 5, 6, 9}, {4, 5, 9, 10}, {1, 4, 5, 8}},
	O: {{2, 3, 6, 7}, {2, 3, 6, 7}, {2, 3, 6, 7}, {2, 3, 6, 7}},
}

// Horizontal slot of each shape on the shared tile sprite sheet.
var textureSlots = [...]uint32{
	J: 0,
	T: 1,
	Z: 2,
	S: 3,
	O: 4,
	I: 5,
	L: 6,
}

// Layout returns the spawn layout of the shape.
func (s Shape) Layout() Layout {
	return spawnLayouts[s]
}

// Rotations returns the layouts for rotation indices 0 through 3.
func (s Shape) Rotations() [4]Layout {
	return rotationLayouts[s]
}

// TextureOffset returns the horizontal pixel offset of the shape's tile on the
// default 18px sprite sheet. Use SourceRect for other tile sizes.
func (s Shape) TextureOffset() uint32 {
	return textureSlots[s] * textureStride
}

// TextureSlot returns the sprite sheet column of the shape's tile.
func (s Shape) TextureSlot() int {
	return int(textureSlots[s])
}

// Valid reports whether s is one of the seven piece kinds.
func (s Shape) Valid() bool {
	return s <= O
}

func (s Shape) String() string {
	switch s {
	case I:
		return "I"
	case T:
		return "T"
	case L:
		return "L"
	case J:
		return "J"
	case S:
		return "S"
	case Z:
		return "Z"
	case O:
		return "O"
	}
	return "Shape(?)"
}
