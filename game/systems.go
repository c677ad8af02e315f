package game

import "github.com/plus3/blockfall/tetromino"

// Standard returns the systems of a regular game in execution order.
func Standard(cfg Config) []System {
	return []System{
		&SpawnSystem{},
		&InputSystem{},
		&GravitySystem{Interval: cfg.FallInterval.Seconds()},
		&LockSystem{},
		&LineClearSystem{},
	}
}

// SpawnSystem promotes the preview piece once the previous one has locked
// and deals a new preview. A spawned piece that already overlaps the stack
// ends the game.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *UpdateFrame) {
	state := frame.State
	if state.GameOver {
		return
	}

	if state.Next == nil {
		state.Next = state.newPiece()
		state.Next.SetForNext()
		state.Next.Project()
	}

	if state.Current != nil {
		return
	}

	current := state.Next
	state.Next = state.newPiece()
	state.Next.SetForNext()
	state.Next.Project()

	state.enter(current)
	state.Counters.Spawned++
}

// InputSystem applies the actions queued since the last frame.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	state := frame.State

	for _, action := range state.drain() {
		switch action {
		case MoveLeft:
			state.shift(tetromino.Minus)
		case MoveRight:
			state.shift(tetromino.Plus)
		case SoftDrop:
			state.stepDown()
		case HardDrop:
			for state.falling() != nil {
				if state.stepDown() {
					break
				}
			}
		case RotateCW:
			state.rotate(tetromino.Clockwise)
		case RotateCCW:
			state.rotate(tetromino.CounterClockwise)
		case Hold:
			state.hold()
		}
	}
}

// GravitySystem drops the falling piece one row every Interval seconds.
type GravitySystem struct {
	Interval    float64
	accumulator float64
}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	state := frame.State
	if state.falling() == nil {
		s.accumulator = 0
		return
	}

	interval := s.Interval
	if interval <= 0 {
		interval = state.Config.FallInterval.Seconds()
	}

	s.accumulator += frame.DeltaTime
	for s.accumulator >= interval {
		s.accumulator -= interval
		if state.stepDown() {
			s.accumulator = 0
			return
		}
	}
}

// LockSystem hands a piece that came to rest over to the board.
type LockSystem struct{}

func (s *LockSystem) Execute(frame *UpdateFrame) {
	state := frame.State
	current := state.Current
	if current == nil || current.IsActive() || state.GameOver {
		return
	}

	state.Board.Lock(current)
	state.Locked = current
	state.Current = nil
	state.CanHold = true
	state.Counters.Locked++
}

// LineClearSystem queues every complete row for removal at the end of the
// frame.
type LineClearSystem struct{}

func (s *LineClearSystem) Execute(frame *UpdateFrame) {
	rows := frame.State.Board.FullRows()
	if len(rows) == 0 {
		return
	}

	frame.Commands.ClearRows(rows)
	frame.State.Counters.LinesCleared += len(rows)
}
