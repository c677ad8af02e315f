package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/game"
)

var actions = []game.Action{
	game.MoveLeft,
	game.MoveRight,
	game.SoftDrop,
	game.HardDrop,
	game.RotateCW,
	game.RotateCCW,
	game.Hold,
}

type run struct {
	state     *game.State
	scheduler *game.Scheduler
}

func main() {
	cfg := game.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	games := flag.Int("games", 64, "The number of games played side by side.")
	actionRate := flag.Float64("action-rate", 0.5, "Chance per frame that a game receives a random action.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if *games < 1 {
		log.Fatalf("Invalid config: -games must be at least 1, got %d", *games)
	}

	log.Println("Starting piece stress test...")

	runs := make([]run, *games)
	for i := range runs {
		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + uint64(i)
		state, scheduler := game.NewGame(gameCfg)
		runs[i] = run{state: state, scheduler: scheduler}
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(*games)))

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Seed:           cfg.Seed,
		Bag:            cfg.Bag,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d games for %s...\n", *games, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	// Games advance on simulated time so gravity runs several rows per
	// second of wall clock regardless of machine speed.
	step := cfg.FallInterval.Seconds() / 4
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			for _, r := range runs {
				if rng.Float64() < *actionRate {
					r.state.Push(actions[rng.IntN(len(actions))])
				}
				r.scheduler.Once(step)

				if r.state.GameOver {
					report.GamesOver++
					report.Add(r.state.Counters)
					r.state.Reset()
				}
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	for _, r := range runs {
		report.Add(r.state.Counters)
	}
	report.TotalFrames = report.Totals.Frames
	report.Systems = runs[0].scheduler.GetStats().Systems
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
