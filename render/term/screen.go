// Package term draws pieces and the stack into a terminal. Each tile takes
// two character cells so the field keeps roughly square proportions.
package term

import (
	"errors"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetromino"
)

var (
	// ErrOffscreen is returned for tiles that fall outside the terminal.
	ErrOffscreen = errors.New("term: tile outside screen")
	// ErrUnknownTile is returned when the source region is not a sheet slot.
	ErrUnknownTile = errors.New("term: unknown tile")
)

const tileRune = '█'

// Screen adapts a tcell screen to tetromino.Drawer.
type Screen struct {
	screen   tcell.Screen
	tileSize uint32
	styles   [len(render.Colors)]tcell.Style

	// Origin is the cell the pixel origin maps to.
	Origin image.Point
}

// New wraps screen for a field with the given tile size.
func New(screen tcell.Screen, tileSize uint32) *Screen {
	s := &Screen{screen: screen, tileSize: tileSize}
	for i, c := range render.Colors {
		s.styles[i] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return s
}

// Cell returns the terminal cell of the left half of the tile at pixel p.
func (s *Screen) Cell(p image.Point) (x, y int) {
	ts := int(s.tileSize)
	return s.Origin.X + 2*(p.X/ts), s.Origin.Y + p.Y/ts
}

func (s *Screen) DrawRegion(src, dst image.Rectangle) error {
	slot, ok := render.SlotAt(src, s.tileSize)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownTile, src)
	}

	x, y := s.Cell(dst.Min)
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x+1 >= w || y >= h {
		return fmt.Errorf("%w: cell (%d,%d) on %dx%d", ErrOffscreen, x, y, w, h)
	}

	style := s.styles[slot]
	s.screen.SetContent(x, y, tileRune, nil, style)
	s.screen.SetContent(x+1, y, tileRune, nil, style)
	return nil
}

// Frame draws the outline of the field described by bounds, one cell outside
// the playable area.
func (s *Screen) Frame(bounds tetromino.Bounds) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	left, top := s.Cell(image.Pt(int(bounds.Left), 0))
	right, bottom := s.Cell(image.Pt(int(bounds.Right), int(bounds.Floor)))
	top += tetromino.HiddenRows

	for y := top; y < bottom; y++ {
		s.screen.SetContent(left, y, '│', nil, style)
		s.screen.SetContent(left+1, y, ' ', nil, style)
		s.screen.SetContent(right, y, '│', nil, style)
	}
	for x := left; x <= right; x++ {
		s.screen.SetContent(x, bottom, '─', nil, style)
	}
	s.screen.SetContent(left, bottom, '└', nil, style)
	s.screen.SetContent(right, bottom, '┘', nil, style)
}

// Text writes str starting at cell (x, y).
func (s *Screen) Text(x, y int, str string) {
	for i, r := range []rune(str) {
		s.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
