// Package sprite draws pieces and the stack onto an Ebiten screen from a
// tile sprite sheet.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetromino"
)

// ErrRegion is returned when a draw call asks for a region outside the sheet.
var ErrRegion = errors.New("sprite: region outside sheet")

// Sheet is a loaded tile sprite sheet.
type Sheet struct {
	img    *ebiten.Image
	bounds image.Rectangle
}

// LoadSheet reads the sprite sheet artwork from path.
func LoadSheet(path string) (*Sheet, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sheet %s: %w", path, err)
	}
	return NewSheet(img), nil
}

// NewSheet wraps an existing image.
func NewSheet(img *ebiten.Image) *Sheet {
	return &Sheet{img: img, bounds: img.Bounds()}
}

// NewSolidSheet builds a sheet of plain coloured tiles.
func NewSolidSheet(tileSize uint32) *Sheet {
	return NewSheet(ebiten.NewImageFromImage(render.SheetImage(tileSize)))
}

// Bounds returns the pixel bounds of the sheet.
func (s *Sheet) Bounds() image.Rectangle {
	return s.bounds
}

// On returns a drawer that copies tiles of the sheet onto screen, shifted by
// offset.
func (s *Sheet) On(screen *ebiten.Image, offset image.Point) tetromino.Drawer {
	return &Target{sheet: s, screen: screen, offset: offset}
}

// Target is a sheet bound to a destination image for one frame.
type Target struct {
	sheet  *Sheet
	screen *ebiten.Image
	offset image.Point
}

func (t *Target) DrawRegion(src, dst image.Rectangle) error {
	op, err := placement(t.sheet.bounds, src, dst.Add(t.offset))
	if err != nil {
		return err
	}
	tile := t.sheet.img.SubImage(src).(*ebiten.Image)
	t.screen.DrawImage(tile, op)
	return nil
}

// placement checks src against the sheet and returns the transform that
// stretches it over dst.
func placement(sheet, src, dst image.Rectangle) (*ebiten.DrawImageOptions, error) {
	if src.Empty() || !src.In(sheet) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrRegion, src, sheet)
	}

	op := &ebiten.DrawImageOptions{}
	if dst.Dx() != src.Dx() || dst.Dy() != src.Dy() {
		op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	}
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	return op, nil
}
