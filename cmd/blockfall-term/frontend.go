package main

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render/term"
)

// Frontend plays one game in a terminal.
type Frontend struct {
	screen    tcell.Screen
	term      *term.Screen
	state     *game.State
	scheduler *game.Scheduler
}

// NewFrontend starts a game with cfg that draws into screen.
func NewFrontend(screen tcell.Screen, cfg game.Config) *Frontend {
	state, scheduler := game.NewGame(cfg)
	return &Frontend{
		screen:    screen,
		term:      term.New(screen, cfg.TileSize),
		state:     state,
		scheduler: scheduler,
	}
}

// actionFor maps a key press to a game action.
func actionFor(key tcell.Key, r rune) (game.Action, bool) {
	switch key {
	case tcell.KeyLeft:
		return game.MoveLeft, true
	case tcell.KeyRight:
		return game.MoveRight, true
	case tcell.KeyDown:
		return game.SoftDrop, true
	case tcell.KeyUp:
		return game.RotateCW, true
	case tcell.KeyRune:
		switch r {
		case ' ':
			return game.HardDrop, true
		case 'x', 'X':
			return game.RotateCW, true
		case 'z', 'Z':
			return game.RotateCCW, true
		case 'c', 'C':
			return game.Hold, true
		case 'h':
			return game.MoveLeft, true
		case 'l':
			return game.MoveRight, true
		case 'j':
			return game.SoftDrop, true
		}
	}
	return 0, false
}

// handle applies one terminal event and reports whether to keep running.
func (f *Frontend) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if f.state.GameOver && ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			log.Printf("Restarting after %d lines.", f.state.Counters.LinesCleared)
			f.state.Reset()
			return true
		}
		if action, ok := actionFor(ev.Key(), ev.Rune()); ok {
			f.state.Push(action)
		}

	case *tcell.EventResize:
		f.screen.Sync()
	}

	return true
}

// draw renders the current state to the screen buffer.
func (f *Frontend) draw() error {
	f.screen.Clear()
	f.term.Frame(f.state.Config.Bounds)

	if err := game.Draw(f.state, f.term); err != nil {
		return err
	}

	cfg := f.state.Config
	preview := game.PreviewOrigin(cfg)
	hold := game.HoldOrigin(cfg)
	px, py := f.term.Cell(preview)
	hx, hy := f.term.Cell(hold)
	f.term.Text(px, py-1, "NEXT")
	f.term.Text(hx, hy-1, "HOLD")

	c := f.state.Counters
	f.term.Text(hx, hy+5, fmt.Sprintf("LINES  %d", c.LinesCleared))
	f.term.Text(hx, hy+6, fmt.Sprintf("PIECES %d", c.Locked))
	if f.state.GameOver {
		f.term.Text(hx, hy+8, "GAME OVER")
		f.term.Text(hx, hy+9, "r restart, q quit")
	}
	return nil
}

// fits reports whether the terminal is large enough for the whole game.
func (f *Frontend) fits() bool {
	w, h := game.ScreenSize(f.state.Config)
	cols, rows := f.term.Cell(image.Pt(w, h))
	sw, sh := f.screen.Size()
	return cols <= sw && rows < sh
}

// Run plays until the user quits.
func (f *Frontend) Run(frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	log.Printf("Starting blockfall, seed %d.", f.state.Config.Seed)
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if !f.handle(ev) {
				return nil
			}

		case now := <-ticker.C:
			f.scheduler.Once(now.Sub(last).Seconds())
			last = now

			if !f.fits() {
				f.screen.Clear()
				f.term.Text(0, 0, "terminal too small")
				f.screen.Show()
				continue
			}
			if err := f.draw(); err != nil {
				return fmt.Errorf("render frame %d: %w", f.state.Counters.Frames, err)
			}
			f.screen.Show()
		}
	}
}
