package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportTotals(t *testing.T) {
	r := &Report{}
	assert.Zero(t, r.RejectRate())

	r.Add(game.Counters{Frames: 10, Spawned: 3, Locked: 2, Rotations: 3, RotationsRejected: 1})
	r.Add(game.Counters{Frames: 5, Spawned: 1, LinesCleared: 2, Vacated: 42})

	assert.Equal(t, int64(15), r.Totals.Frames)
	assert.Equal(t, 4, r.Totals.Spawned)
	assert.Equal(t, 2, r.Totals.LinesCleared)
	assert.Equal(t, 42, r.Totals.Vacated)
	assert.InDelta(t, 0.25, r.RejectRate(), 1e-9)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:       time.Second,
		Games:          2,
		Seed:           9,
		Bag:            true,
		TotalFrames:    120,
		GCPauseMetrics: true,
		Systems:        []game.SystemStats{{Name: "GravitySystem", ExecutionCount: 120}},
	}
	r.Add(game.Counters{Rotations: 1, RotationsRejected: 1, LinesCleared: 4})

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Parallel Games:** 2")
	assert.Contains(t, out, "**Seed:** 9 (7-bag)")
	assert.Contains(t, out, "**Frames:** 120")
	assert.Contains(t, out, "**Lines Cleared:** 4")
	assert.Contains(t, out, "(50.0%)")
	assert.Contains(t, out, "- GravitySystem: 120 runs")
	assert.Contains(t, out, "## GC Pause Durations")
}
