package game

import (
	"fmt"
	"image"

	"github.com/plus3/blockfall/tetromino"
)

// SidebarWidth is the number of tile columns to the right of the field used
// for the preview and hold panels.
const SidebarWidth = 6

// ScreenSize returns the pixel size needed to draw a whole game.
func ScreenSize(cfg Config) (width, height int) {
	return int(cfg.Bounds.Right + SidebarWidth*cfg.TileSize), int(cfg.Bounds.Floor)
}

// PreviewOrigin returns the top left pixel of the next-piece panel.
func PreviewOrigin(cfg Config) image.Point {
	return image.Pt(int(cfg.Bounds.Right+cfg.TileSize), int(cfg.TileSize))
}

// HoldOrigin returns the top left pixel of the hold panel.
func HoldOrigin(cfg Config) image.Point {
	return image.Pt(int(cfg.Bounds.Right+cfg.TileSize), int(7*cfg.TileSize))
}

// Draw renders the stack, the falling piece and both display panels.
func Draw(s *State, d tetromino.Drawer) error {
	if err := s.Board.Draw(d); err != nil {
		return fmt.Errorf("draw board: %w", err)
	}

	if s.Current != nil {
		if err := s.Current.Draw(d); err != nil {
			return fmt.Errorf("draw %s: %w", s.Current.Shape(), err)
		}
	}

	ts := int(s.Config.TileSize)
	if s.Next != nil {
		origin := PreviewOrigin(s.Config)
		slot := offsetDrawer{d: d, delta: origin.Sub(image.Pt(tetromino.PreviewColumn*ts, tetromino.PreviewRow*ts))}
		if err := s.Next.Draw(slot); err != nil {
			return fmt.Errorf("draw next %s: %w", s.Next.Shape(), err)
		}
	}

	if s.Held != nil {
		origin := HoldOrigin(s.Config)
		slot := offsetDrawer{d: d, delta: origin.Sub(image.Pt(tetromino.PocketColumn*ts, tetromino.PocketRow*ts))}
		if err := s.Held.Draw(slot); err != nil {
			return fmt.Errorf("draw held %s: %w", s.Held.Shape(), err)
		}
	}

	return nil
}

// offsetDrawer moves the preview and pocket slots out of the field and into
// the sidebar.
type offsetDrawer struct {
	d     tetromino.Drawer
	delta image.Point
}

func (o offsetDrawer) DrawRegion(src, dst image.Rectangle) error {
	return o.d.DrawRegion(src, dst.Add(o.delta))
}
