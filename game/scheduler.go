package game

import (
	"context"
	"math"
	"reflect"
	"time"
)

// SchedulerStats summarises how often and how long the systems ran.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds the timings of one registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// timing accumulates the durations of one system. fastest starts at the
// largest duration so the first sample always replaces it.
type timing struct {
	runs           int64
	last, total    time.Duration
	fastest, worst time.Duration
}

func newTiming() timing {
	return timing{fastest: math.MaxInt64}
}

func (t *timing) record(d time.Duration) {
	t.runs++
	t.last = d
	t.total += d
	t.fastest = min(t.fastest, d)
	t.worst = max(t.worst, d)
}

func (t *timing) snapshot(name string) SystemStats {
	s := SystemStats{
		Name:           name,
		ExecutionCount: t.runs,
		MinDuration:    t.fastest,
		MaxDuration:    t.worst,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		s.AvgDuration = t.total / time.Duration(t.runs)
	}
	return s
}

type entry struct {
	name   string
	system System
	timing timing
}

// Scheduler runs systems against one game state, in registration order.
// Board changes queued on the frame's Commands are applied once every
// system has run.
type Scheduler struct {
	state    *State
	entries  []*entry
	commands *Commands
}

// NewScheduler creates a scheduler with no systems for state.
func NewScheduler(state *State) *Scheduler {
	return &Scheduler{state: state, commands: newCommands()}
}

// NewGame builds a state and a scheduler with the standard systems
// registered.
func NewGame(cfg Config) (*State, *Scheduler) {
	state := NewState(cfg)
	scheduler := NewScheduler(state)
	for _, system := range Standard(cfg) {
		scheduler.Register(system)
	}
	return state, scheduler
}

// State returns the game state the scheduler drives.
func (s *Scheduler) State() *State {
	return s.state
}

// Register appends system to the frame. Its stats are reported under the
// name of its type.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.entries = append(s.entries, &entry{name: t.Name(), system: system, timing: newTiming()})
}

// Once runs one frame of dt seconds.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{DeltaTime: dt, Commands: s.commands, State: s.state}

	for _, e := range s.entries {
		start := time.Now()
		e.system.Execute(frame)
		e.timing.record(time.Since(start))
	}

	s.commands.Flush(s.state.Board)
	s.state.Counters.Frames++
}

// Run calls Once on every tick of interval, passing the measured time since
// the previous tick, until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns the timings of every system in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		stats.Systems = append(stats.Systems, e.timing.snapshot(e.name))
		stats.TotalExecutions += e.timing.runs
	}
	return stats
}
