package placement

import (
	"math"
	"math/rand/v2"
)

// Scatterer places an unordered collection around a center point. The result
// is intentionally non-deterministic unless the Scatterer is built with a
// fixed seed.
type Scatterer struct {
	Center     Position
	BaseRadius float64
	RadiusStep float64
	MaxRadius  float64
	// Jitter is the full width of the random angular offset in radians.
	Jitter float64

	rng *rand.Rand
}

// NewScatterer returns a scatterer with the tree's default geometry, seeded
// from the runtime's random source.
func NewScatterer() *Scatterer {
	return NewSeededScatterer(rand.Uint64(), rand.Uint64())
}

// NewSeededScatterer returns a scatterer whose jitter is reproducible.
func NewSeededScatterer(seed1, seed2 uint64) *Scatterer {
	return &Scatterer{
		Center:     Position{X: 200, Y: 200},
		BaseRadius: 60,
		RadiusStep: 5,
		MaxRadius:  160,
		Jitter:     math.Pi / 8,
		rng:        rand.New(rand.NewPCG(seed1, seed2)),
	}
}

// sectorAngles are the base angles of the four sectors and the direction the
// offset within a sector turns.
var sectorAngles = [4]struct {
	base float64
	dir  float64
}{
	{math.Pi / 4, 1},      // top
	{7 * math.Pi / 4, -1}, // right
	{5 * math.Pi / 4, 1},  // bottom
	{3 * math.Pi / 4, -1}, // left
}

// Position returns a spot for the index-th item of total. Every three items
// move to the next sector; the radius grows with index up to MaxRadius.
func (s *Scatterer) Position(index, total int) Position {
	if index < 0 {
		index = 0
	}
	angle := s.angle(index) + (s.rng.Float64()-0.5)*s.Jitter
	r := s.Radius(index)
	return Position{
		X: s.Center.X + math.Cos(angle)*r,
		Y: s.Center.Y + math.Sin(angle)*r,
	}
}

// Positions scatters total items.
func (s *Scatterer) Positions(total int) []Position {
	out := make([]Position, 0, max(total, 0))
	for i := 0; i < total; i++ {
		out = append(out, s.Position(i, total))
	}
	return out
}

// Radius returns the distance from the center for index.
func (s *Scatterer) Radius(index int) float64 {
	return math.Min(s.BaseRadius+float64(index)*s.RadiusStep, s.MaxRadius)
}

func (s *Scatterer) angle(index int) float64 {
	sector := sectorAngles[(index/3)%4]
	offset := float64(index % 3)
	return sector.base + sector.dir*offset*math.Pi/12
}
