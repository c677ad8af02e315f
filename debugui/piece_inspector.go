package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetromino"
)

// PieceInfo is a snapshot of one piece as shown by the inspector.
type PieceInfo struct {
	Shape    string
	AnchorX  uint32
	AnchorY  uint32
	Rotation int
	Layout   tetromino.Layout
	Tiles    []tetromino.Coord
	Active   bool
	Held     bool
}

// Describe collects what the inspector shows about p. Deleted tiles are left
// out of Tiles.
func Describe(p *tetromino.Piece) PieceInfo {
	x, y := p.Anchor()
	info := PieceInfo{
		Shape:    p.Shape().String(),
		AnchorX:  x,
		AnchorY:  y,
		Rotation: p.Rotation(),
		Layout:   p.Layout(),
		Active:   p.IsActive(),
		Held:     p.IsHeld(),
	}
	for i, tile := range p.Tiles() {
		if !p.Removed(i) {
			info.Tiles = append(info.Tiles, tile)
		}
	}
	return info
}

// PieceInspector shows the pieces of a game and lets the user pause or
// restart it.
type PieceInspector struct {
	Paused bool
}

// NewPieceInspector returns an inspector for a running game.
func NewPieceInspector() *PieceInspector {
	return &PieceInspector{}
}

// Render draws the inspector window for state. The restart button resets
// the game.
func (pi *PieceInspector) Render(state *game.State) {
	if !imgui.BeginV("Piece Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Paused", &pi.Paused)
	imgui.SameLine()
	if imgui.Button("Restart") {
		state.Reset()
	}
	if state.GameOver {
		imgui.Text("Game over")
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Board cells: %d", state.Board.Len()))
	imgui.Text(fmt.Sprintf("Full rows: %v", state.Board.FullRows()))
	imgui.Text(fmt.Sprintf("Can hold: %t", state.CanHold))

	pi.renderPiece("Current", state.Current)
	pi.renderPiece("Next", state.Next)
	pi.renderPiece("Held", state.Held)
	pi.renderPiece("Last locked", state.Locked)

	imgui.End()
}

func (pi *PieceInspector) renderPiece(label string, p *tetromino.Piece) {
	if p == nil {
		imgui.BulletText(label + ": none")
		return
	}

	info := Describe(p)
	if !imgui.TreeNodeStr(fmt.Sprintf("%s: %s", label, info.Shape)) {
		return
	}

	imgui.Text(fmt.Sprintf("Anchor: (%d, %d)", info.AnchorX, info.AnchorY))
	imgui.Text(fmt.Sprintf("Rotation: %d", info.Rotation))
	imgui.Text(fmt.Sprintf("Layout: %v", info.Layout))
	imgui.Text(fmt.Sprintf("Active: %t  Held: %t", info.Active, info.Held))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("TilesTable##"+label, 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableHeadersRow()

		for _, tile := range info.Tiles {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", tile.X))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", tile.Y))
		}

		imgui.EndTable()
	}
	imgui.TreePop()
}
