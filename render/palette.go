// Package render holds what the frontends share: the tile colours and a
// generated sprite sheet for when no artwork is supplied.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/plus3/blockfall/tetromino"
)

// Colors are indexed by texture slot, matching the order of the artwork.
var Colors = [...]color.RGBA{
	{R: 0x1e, G: 0x4f, B: 0xd8, A: 0xff}, // J
	{R: 0x9b, G: 0x3c, B: 0xd1, A: 0xff}, // T
	{R: 0xe0, G: 0x2f, B: 0x2f, A: 0xff}, // Z
	{R: 0x3c, G: 0xc2, B: 0x4a, A: 0xff}, // S
	{R: 0xf2, G: 0xd2, B: 0x2e, A: 0xff}, // O
	{R: 0x2e, G: 0xd0, B: 0xe8, A: 0xff}, // I
	{R: 0xf0, G: 0x8c, B: 0x24, A: 0xff}, // L
}

// Color returns the tile colour of shape.
func Color(shape tetromino.Shape) color.RGBA {
	return Colors[shape.TextureSlot()]
}

// SlotAt maps a sprite sheet region back to its texture slot. It returns
// false when src does not start on a slot boundary.
func SlotAt(src image.Rectangle, tileSize uint32) (int, bool) {
	if tileSize == 0 || src.Min.X < 0 || src.Min.Y != 0 {
		return 0, false
	}
	ts := int(tileSize)
	if src.Min.X%ts != 0 {
		return 0, false
	}
	slot := src.Min.X / ts
	if slot >= len(Colors) {
		return 0, false
	}
	return slot, true
}

// SheetImage draws a plain sprite sheet: one bevelled square per texture
// slot, laid out like the artwork.
func SheetImage(tileSize uint32) *image.RGBA {
	ts := int(tileSize)
	img := image.NewRGBA(image.Rect(0, 0, ts*len(Colors), ts))

	for slot, c := range Colors {
		tile := image.Rect(slot*ts, 0, (slot+1)*ts, ts)
		draw.Draw(img, tile, image.NewUniform(shade(c, 0.6)), image.Point{}, draw.Src)
		if ts > 2 {
			draw.Draw(img, tile.Inset(1), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
