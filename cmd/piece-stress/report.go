package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/game"
)

// Report collects the configuration and results of a stress run.
type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Seed     uint64
	Bag      bool

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	GamesOver      int
	Totals         game.Counters
	UpdateTime     Stats
	Systems        []game.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Add folds the counters of one finished or running game into the totals.
func (r *Report) Add(c game.Counters) {
	r.Totals.Frames += c.Frames
	r.Totals.Spawned += c.Spawned
	r.Totals.Locked += c.Locked
	r.Totals.LinesCleared += c.LinesCleared
	r.Totals.Rotations += c.Rotations
	r.Totals.RotationsRejected += c.RotationsRejected
	r.Totals.Vacated += c.Vacated
}

// RejectRate is the share of rotation attempts that were refused.
func (r *Report) RejectRate() float64 {
	attempts := r.Totals.Rotations + r.Totals.RotationsRejected
	if attempts == 0 {
		return 0
	}
	return float64(r.Totals.RotationsRejected) / float64(attempts)
}

// Stats summarises a series of durations.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize derives the summary fields from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}
	s.Min = slices.Min(s.Samples)
	s.Max = slices.Max(s.Samples)
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Piece Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Parallel Games:** {{.Games}}
- **Seed:** {{.Seed}}{{if .Bag}} (7-bag){{end}}

## Play
- **Frames:** {{.TotalFrames}}
- **Games Over:** {{.GamesOver}}
- **Pieces Spawned:** {{.Totals.Spawned}}
- **Pieces Locked:** {{.Totals.Locked}}
- **Lines Cleared:** {{.Totals.LinesCleared}}
- **Cells Vacated:** {{.Totals.Vacated}}
- **Rotations:** {{.Totals.Rotations}} accepted, {{.Totals.RotationsRejected}} rejected ({{pct .RejectRate}})

## Performance Results
- **Total Test Time:** {{.TotalTime}}
- **Update Time (all games, one frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}{{end}}

## Memory (MiB)
| | start | end |
|---|---|---|
| heap in use | {{mb .MemStatsStart.HeapAlloc}} | {{mb .MemStatsEnd.HeapAlloc}} |
| allocated | {{mb .MemStatsStart.TotalAlloc}} | {{mb .MemStatsEnd.TotalAlloc}} |
| from OS | {{mb .MemStatsStart.Sys}} | {{mb .MemStatsEnd.Sys}} |

Allocated during the run: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes over {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}} GC cycles.
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Pause During Run:** {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | nsi}}
{{end}}`

// Generate writes the report as markdown to w.
func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"nsi": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	return tmpl.Execute(w, r)
}
