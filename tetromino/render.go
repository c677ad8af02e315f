package tetromino

import "image"

// Drawer copies a region of the tile sprite sheet to the screen. src is the
// region on the sheet and dst the target rectangle, both in pixels.
type Drawer interface {
	DrawRegion(src, dst image.Rectangle) error
}

// SourceRect returns the sprite sheet region holding the tile of shape on a
// sheet whose slots are tileSize pixels wide.
func SourceRect(shape Shape, tileSize uint32) image.Rectangle {
	off := shape.TextureSlot() * int(tileSize)
	return image.Rect(off, 0, off+int(tileSize), int(tileSize))
}

// TileRect returns the screen rectangle covered by the tile at c.
func TileRect(c Coord, tileSize uint32) image.Rectangle {
	x, y := int(c.X), int(c.Y)
	return image.Rect(x, y, x+int(tileSize), y+int(tileSize))
}

// Draw hands every visible tile of the piece to d. Tiles in the hidden spawn
// rows are skipped unless the piece is in a display slot. Drawing stops at
// the first error, which is returned as is; the piece is never modified.
func (p *Piece) Draw(d Drawer) error {
	src := SourceRect(p.shape, p.tileSize)
	tiles := p.projected()

	for i, t := range tiles {
		if p.removed[i] {
			continue
		}
		if !p.held && t.Y < HiddenRows*p.tileSize {
			continue
		}
		if err := d.DrawRegion(src, TileRect(t, p.tileSize)); err != nil {
			return err
		}
	}
	return nil
}
