package game

import (
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/tetromino"
)

// Action is one player command, queued by a frontend and consumed by the
// InputSystem on the next frame.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Hold
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case SoftDrop:
		return "soft-drop"
	case HardDrop:
		return "hard-drop"
	case RotateCW:
		return "rotate-cw"
	case RotateCCW:
		return "rotate-ccw"
	case Hold:
		return "hold"
	}
	return "unknown"
}

// Counters tally what happened over a game.
type Counters struct {
	Frames            int64
	Spawned           int
	Locked            int
	LinesCleared      int
	Rotations         int
	RotationsRejected int
	Vacated           int
}

// State is everything one game owns. The falling piece lives here rather
// than in a package variable so several games can run side by side.
type State struct {
	Config Config
	Board  *board.Board
	Source tetromino.ShapeSource

	Current *tetromino.Piece
	Next    *tetromino.Piece
	Held    *tetromino.Piece
	// Locked is the piece most recently handed to the board. Row clears trim
	// its tiles until the next piece locks.
	Locked *tetromino.Piece

	CanHold  bool
	GameOver bool
	Counters Counters

	actions []Action
}

// NewState creates a game with an empty board. The first piece spawns on the
// first frame.
func NewState(cfg Config) *State {
	var src tetromino.ShapeSource
	if cfg.Bag {
		src = tetromino.NewBagSource(cfg.Seed)
	} else {
		src = tetromino.NewRandomSource(cfg.Seed)
	}

	s := &State{
		Config:  cfg,
		Board:   board.New(cfg.Bounds, cfg.TileSize),
		Source:  src,
		CanHold: true,
	}
	s.Board.OnVacate(s.trimLocked)
	return s
}

func (s *State) trimLocked(c tetromino.Coord) {
	s.Counters.Vacated++
	if s.Locked != nil {
		s.Locked.DeleteTile(c)
	}
}

// Push queues an action for the next frame.
func (s *State) Push(a Action) {
	s.actions = append(s.actions, a)
}

func (s *State) drain() []Action {
	actions := s.actions
	s.actions = nil
	return actions
}

// Reset clears the board and counters and starts over with the same config.
func (s *State) Reset() {
	s.Board.Reset()
	s.Current, s.Next, s.Held, s.Locked = nil, nil, nil, nil
	s.CanHold = true
	s.GameOver = false
	s.Counters = Counters{}
	s.actions = s.actions[:0]
}

func (s *State) newPiece() *tetromino.Piece {
	opts := []tetromino.Option{tetromino.WithTileSize(s.Config.TileSize)}
	if s.Config.StrictRotation {
		opts = append(opts, tetromino.WithOverlapPolicy(tetromino.RejectAnyOverlap))
	}
	return tetromino.New(s.Source.Next(), opts...)
}

// falling returns the current piece when it still accepts commands.
func (s *State) falling() *tetromino.Piece {
	if s.GameOver || s.Current == nil || !s.Current.IsActive() {
		return nil
	}
	return s.Current
}

// shift moves the falling piece one column, undoing the move when it lands
// on locked cells.
func (s *State) shift(dir tetromino.Direction) {
	p := s.falling()
	if p == nil {
		return
	}
	p.Move(1, dir, tetromino.AxisX, s.Config.Bounds)
	if p.Overlaps(s.Board) {
		p.Move(1, -dir, tetromino.AxisX, s.Config.Bounds)
	}
}

// stepDown drops the falling piece one row and reports whether it came to
// rest, either on the floor or on the stack.
func (s *State) stepDown() bool {
	p := s.falling()
	if p == nil {
		return false
	}
	p.Move(1, tetromino.Plus, tetromino.AxisY, s.Config.Bounds)
	if !p.IsActive() {
		return true
	}
	if p.Overlaps(s.Board) {
		p.Move(1, tetromino.Minus, tetromino.AxisY, s.Config.Bounds)
		p.Deactivate()
		return true
	}
	return false
}

func (s *State) rotate(r tetromino.Rotation) {
	p := s.falling()
	if p == nil {
		return
	}
	if p.Rotate(r, s.Board, s.Config.Bounds) {
		s.Counters.Rotations++
	} else {
		s.Counters.RotationsRejected++
	}
}

// hold parks the falling piece in the pocket and brings the previously held
// piece, if any, back to the spawn position. Allowed once between locks.
func (s *State) hold() {
	p := s.falling()
	if p == nil || !s.CanHold {
		return
	}

	p.SetToPocket()
	p.Project()

	prev := s.Held
	s.Held = p
	s.CanHold = false

	if prev == nil {
		s.Current = nil
		return
	}
	s.enter(prev)
}

// enter puts p at the spawn position as the falling piece. A piece that
// starts on locked cells is locked at once and ends the game.
func (s *State) enter(p *tetromino.Piece) {
	p.SetDefaultPos()
	p.Project()
	s.Current = p

	if p.Overlaps(s.Board) {
		p.Deactivate()
		s.GameOver = true
	}
}
