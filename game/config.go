package game

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/plus3/blockfall/tetromino"
)

// Config holds the playfield geometry and pacing of a game.
type Config struct {
	TileSize     uint32
	Bounds       tetromino.Bounds
	FallInterval time.Duration
	Seed         uint64

	// Bag deals shapes from shuffled 7-bags instead of uniformly at random.
	Bag bool
	// StrictRotation refuses every rotation that overlaps the stack.
	StrictRotation bool
}

// DefaultConfig returns the classic 18px field: 21 playable columns and 26
// rows, the first three of which are hidden spawn rows.
func DefaultConfig() Config {
	return Config{
		TileSize:     tetromino.DefaultTileSize,
		Bounds:       tetromino.Bounds{Left: 0, Right: 396, Floor: 468},
		FallInterval: 500 * time.Millisecond,
	}
}

// RegisterFlags binds the config fields to command line flags on fs. Current
// field values become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(uint32Value{&c.TileSize}, "tile", "Pixel size of one tile.")
	fs.Var(uint32Value{&c.Bounds.Left}, "left", "Left border of the playfield in pixels.")
	fs.Var(uint32Value{&c.Bounds.Right}, "right", "Right border of the playfield in pixels.")
	fs.Var(uint32Value{&c.Bounds.Floor}, "floor", "Floor of the playfield in pixels.")
	fs.DurationVar(&c.FallInterval, "fall", c.FallInterval, "Time between gravity steps.")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Seed for the shape source.")
	fs.BoolVar(&c.Bag, "bag", c.Bag, "Deal shapes from shuffled 7-bags.")
	fs.BoolVar(&c.StrictRotation, "strict-rotation", c.StrictRotation, "Refuse rotations that overlap locked cells.")
}

// Validate checks that a piece fits inside the configured field.
func (c Config) Validate() error {
	if c.TileSize == 0 {
		return errors.New("tile size must be positive")
	}
	if c.Bounds.Right <= c.Bounds.Left+4*c.TileSize {
		return fmt.Errorf("field %d..%d is narrower than a piece", c.Bounds.Left, c.Bounds.Right)
	}
	if c.Bounds.Floor <= (tetromino.HiddenRows+4)*c.TileSize {
		return fmt.Errorf("floor %d leaves no visible rows", c.Bounds.Floor)
	}
	if c.FallInterval <= 0 {
		return fmt.Errorf("fall interval %s must be positive", c.FallInterval)
	}
	return nil
}

type uint32Value struct {
	p *uint32
}

func (v uint32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

func (v uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v.p = uint32(n)
	return nil
}
