package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// PerformanceStats shows the frame time history and per-system timings of a
// scheduler.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceStats keeps the last historyFrames frame times, at least one.
func NewPerformanceStats(historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores one frame time, overwriting the oldest sample.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean of the recorded frame times in
// milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(ps.historyFrames)
}

// Render records deltaTime and draws the window with the game counters, the
// frame time graph and the per-system timings of scheduler.
func (ps *PerformanceStats) Render(scheduler *game.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(deltaTime)

	counters := scheduler.State().Counters
	imgui.Text(fmt.Sprintf("Frames: %d", counters.Frames))
	imgui.Text(fmt.Sprintf("Pieces: %d spawned, %d locked", counters.Spawned, counters.Locked))
	imgui.Text(fmt.Sprintf("Lines: %d", counters.LinesCleared))
	imgui.Text(fmt.Sprintf("Rotations: %d (%d rejected)", counters.Rotations, counters.RotationsRejected))

	avgFrameTime := ps.AverageFrameTime()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("System Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameClock measures wall time between rendered frames, which differs from
// the simulated delta the scheduler is given.
type FrameClock struct {
	last time.Time
}

// NewFrameClock starts a clock at the current time.
func NewFrameClock() *FrameClock {
	return &FrameClock{last: time.Now()}
}

// Tick returns the seconds since the previous call.
func (c *FrameClock) Tick() float32 {
	now := time.Now()
	elapsed := now.Sub(c.last)
	c.last = now
	return float32(elapsed.Seconds())
}
