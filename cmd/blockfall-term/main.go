package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
)

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	frame := flag.Duration("frame", 16*time.Millisecond, "Time between screen updates.")
	logPath := flag.String("log", "", "Write log output to this file instead of discarding it.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(2)
	}

	// The terminal is owned by tcell, so log lines only go to a file.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	f := NewFrontend(screen, cfg)
	runErr := f.Run(*frame)
	screen.Fini()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Game stopped: %v\n", runErr)
		os.Exit(1)
	}
	c := f.state.Counters
	fmt.Printf("%d pieces, %d lines.\n", c.Locked, c.LinesCleared)
}
