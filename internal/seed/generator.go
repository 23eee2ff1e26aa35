// Package seed produces sample journal entries for an empty store.
package seed

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"emotree/internal/calendar"
	"emotree/internal/emotion"
	"emotree/internal/logging"
	"emotree/internal/types"
)

// SampleHour is the local hour every sample entry is dated at.
const SampleHour = 12

// Generator builds sample entries on consecutive past days, starting yesterday.
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	clock       calendar.Clock
	newID       func() string
	reflections *emotion.ReflectionGenerator
	categories  []emotion.Category
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock that anchors "today".
func WithClock(c calendar.Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithSeed makes the generator reproducible.
func WithSeed(seed1, seed2 uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed1, seed2)) }
}

// WithIDFunc replaces the uuid id source.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

// WithCategories restricts sample entries to the given categories.
func WithCategories(cats ...emotion.Category) Option {
	return func(g *Generator) {
		if len(cats) > 0 {
			g.categories = cats
		}
	}
}

// New returns a generator over the full category set.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		clock:       calendar.SystemClock,
		newID:       uuid.NewString,
		reflections: emotion.NewReflectionGenerator(nil),
		categories:  emotion.All(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count sample entries, newest first. Each has a random
// category, one of that category's canned texts, an intensity in [0.5, 1.0],
// a reflection and a random placed flag.
func (g *Generator) Generate(count int) []types.Entry {
	if count <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	y, m, d := now.Date()
	entries := make([]types.Entry, 0, count)
	for i := 0; i < count; i++ {
		cat := g.categories[g.rng.IntN(len(g.categories))]
		texts := TextFor(cat)
		intensity := g.rng.Float64()*0.5 + 0.5

		entries = append(entries, types.Entry{
			ID:            g.newID(),
			Date:          time.Date(y, m, d-(i+1), SampleHour, 0, 0, 0, now.Location()),
			Text:          texts[g.rng.IntN(len(texts))],
			Emotion:       cat,
			Intensity:     intensity,
			Reflection:    g.reflections.Generate(cat, intensity),
			VisualElement: emotion.VisualFor(cat),
			Placed:        g.rng.IntN(2) == 1,
		})
	}
	logging.Seed("Generated %d sample entries ending %s", count, entries[count-1].Day())
	return entries
}
