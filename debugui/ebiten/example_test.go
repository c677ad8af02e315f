package ebiten_test

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render/sprite"
)

// Game implements ebiten.Game and overlays the debug windows on the field.
type Game struct {
	state        *game.State
	scheduler    *game.Scheduler
	sheet        *sprite.Sheet
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Begin ImGui frame before executing systems
	g.imguiBackend.BeginFrame()

	// Execute all game systems (including ImguiSystem)
	g.scheduler.Once(1.0 / 60.0)

	// End ImGui frame after systems complete
	g.imguiBackend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	_ = game.Draw(g.state, g.sheet.On(screen, image.Point{}))

	// Draw ImGui overlay on top
	g.imguiBackend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	cfg := game.DefaultConfig()
	width, height := game.ScreenSize(cfg)

	// Create Ebiten window and ImGui backend
	imguiBackend := debugui_ebiten.NewImguiBackend("blockfall debug", width*2, height*2)

	state, scheduler := game.NewGame(cfg)

	inspector := debugui.NewPieceInspector()
	stats := debugui.NewPerformanceStats(120)
	clock := debugui.NewFrameClock()

	imguiSystem := &debugui.ImguiSystem{}
	imguiSystem.Add(func() { inspector.Render(state) })
	imguiSystem.Add(func() { stats.Render(scheduler, clock.Tick()) })
	scheduler.Register(imguiSystem)

	g := &Game{
		state:        state,
		scheduler:    scheduler,
		sheet:        sprite.NewSolidSheet(cfg.TileSize),
		imguiBackend: imguiBackend,
	}

	// Run the game
	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
