package tetromino

import "math/rand/v2"

// ShapeSource hands out the kind of the next piece to spawn.
type ShapeSource interface {
	Next() Shape
}

// RandomSource picks each shape independently with probability 1/7.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a uniform source seeded with seed.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns a uniformly chosen shape.
func (r *RandomSource) Next() Shape {
	return Shapes[r.rng.IntN(len(Shapes))]
}

// BagSource deals all seven shapes in shuffled order before repeating any.
type BagSource struct {
	rng *rand.Rand
	bag []Shape
}

// NewBagSource creates a 7-bag source seeded with seed.
func NewBagSource(seed uint64) *BagSource {
	return &BagSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bag: make([]Shape, 0, len(Shapes)),
	}
}

// Next returns the next shape from the current bag, refilling it when empty.
func (b *BagSource) Next() Shape {
	if len(b.bag) == 0 {
		b.bag = append(b.bag, Shapes[:]...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}

	next := b.bag[0]
	b.bag = b.bag[1:]
	return next
}
