package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render/sprite"
)

const tps = 60

var keymap = []struct {
	key    ebiten.Key
	action game.Action
}{
	{ebiten.KeyArrowLeft, game.MoveLeft},
	{ebiten.KeyArrowRight, game.MoveRight},
	{ebiten.KeyArrowDown, game.SoftDrop},
	{ebiten.KeySpace, game.HardDrop},
	{ebiten.KeyArrowUp, game.RotateCW},
	{ebiten.KeyX, game.RotateCW},
	{ebiten.KeyZ, game.RotateCCW},
	{ebiten.KeyC, game.Hold},
}

var background = color.RGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}

type Game struct {
	state     *game.State
	scheduler *game.Scheduler
	sheet     *sprite.Sheet
	width     int
	height    int

	imgui     *debugui_ebiten.ImguiBackend
	inspector *debugui.PieceInspector
	input     *debugui.ImguiInputState

	gameOverLogged bool
	err            error
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	if g.takesKeys() {
		g.readKeys()
	}

	if g.paused() {
		g.scheduler.Once(0)
	} else {
		g.scheduler.Once(1.0 / tps)
	}

	if g.state.GameOver && !g.gameOverLogged {
		c := g.state.Counters
		log.Printf("Game over: %d pieces, %d lines.", c.Locked, c.LinesCleared)
		g.gameOverLogged = true
	}
	return nil
}

func (g *Game) paused() bool {
	return g.inspector != nil && g.inspector.Paused
}

// takesKeys reports whether keyboard input reaches the game this frame. A
// paused game or a focused ImGui widget keeps it.
func (g *Game) takesKeys() bool {
	if g.paused() {
		return false
	}
	return g.input == nil || !g.input.WantCaptureKeyboard
}

func (g *Game) readKeys() {
	if g.state.GameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.state.Reset()
			g.gameOverLogged = false
		}
		return
	}

	for _, k := range keymap {
		if inpututil.IsKeyJustPressed(k.key) {
			g.state.Push(k.action)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	field := screen.SubImage(image.Rect(0, 0, g.width, g.height)).(*ebiten.Image)
	field.Fill(background)

	if err := game.Draw(g.state, g.sheet.On(screen, image.Point{})); err != nil && g.err == nil {
		g.err = err
	}

	hold := game.HoldOrigin(g.state.Config)
	preview := game.PreviewOrigin(g.state.Config)
	ebitenutil.DebugPrintAt(screen, "NEXT", preview.X, 0)
	ebitenutil.DebugPrintAt(screen, "HOLD", hold.X, hold.Y-int(g.state.Config.TileSize))

	c := g.state.Counters
	status := fmt.Sprintf("LINES %d\nPIECES %d", c.LinesCleared, c.Locked)
	if g.state.GameOver {
		status += "\n\nGAME OVER\nR TO RESTART"
	}
	ebitenutil.DebugPrintAt(screen, status, hold.X, hold.Y+5*int(g.state.Config.TileSize))

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	sheetPath := flag.String("sheet", "", "Tile sprite sheet; plain coloured tiles when empty.")
	debug := flag.Bool("debug", false, "Overlay the ImGui piece inspector and timing windows.")
	scale := flag.Int("scale", 2, "Window scale factor.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	sheet := sprite.NewSolidSheet(cfg.TileSize)
	if *sheetPath != "" {
		loaded, err := sprite.LoadSheet(*sheetPath)
		if err != nil {
			log.Fatalf("Failed to load sprite sheet: %v", err)
		}
		sheet = loaded
	}

	state, scheduler := game.NewGame(cfg)
	width, height := game.ScreenSize(cfg)

	g := &Game{
		state:     state,
		scheduler: scheduler,
		sheet:     sheet,
		width:     width,
		height:    height,
	}

	if *debug {
		g.imgui = debugui_ebiten.NewImguiBackend("blockfall (debug)", 1280, 720)
		g.inspector = debugui.NewPieceInspector()

		stats := debugui.NewPerformanceStats(120)
		clock := debugui.NewFrameClock()
		imguiSystem := &debugui.ImguiSystem{}
		imguiSystem.Add(func() { g.inspector.Render(state) })
		imguiSystem.Add(func() { stats.Render(scheduler, clock.Tick()) })
		scheduler.Register(imguiSystem)
		g.input = &imguiSystem.Input
	} else {
		ebiten.SetWindowTitle("blockfall")
		ebiten.SetWindowSize(width*(*scale), height*(*scale))
	}
	ebiten.SetTPS(tps)

	log.Printf("Starting blockfall: %dx%d field, seed %d.", width, height, cfg.Seed)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game stopped: %v", err)
	}
}
