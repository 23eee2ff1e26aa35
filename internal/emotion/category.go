// Package emotion classifies journal text into a closed set of emotion
// categories and maps those categories to reflections and visual assets.
//
// Everything in this package is a pure function of its inputs and the static
// tables declared here. Nothing in it returns an error: unknown or empty input
// degrades to the default category (calm).
package emotion

import "strings"

// Category is one member of the closed emotion set.
type Category string

const (
	Joy        Category = "joy"
	Calm       Category = "calm"
	Melancholy Category = "melancholy"
	Anxiety    Category = "anxiety"
	Hope       Category = "hope"
	Wonder     Category = "wonder"
	Gratitude  Category = "gratitude"
	Anger      Category = "anger"
	Queasy     Category = "queasy"
)

// Default is the category used for zero-signal text and unknown values.
const Default = Calm

// Priority is the closed category set in tie-break order. When two categories
// share the highest score the one listed first wins. The order is part of the
// classifier's observable behavior; reordering it changes results.
var Priority = []Category{
	Joy,
	Calm,
	Melancholy,
	Anxiety,
	Hope,
	Wonder,
	Gratitude,
	Anger,
	Queasy,
}

// All returns a copy of the closed set in priority order.
func All() []Category {
	out := make([]Category, len(Priority))
	copy(out, Priority)
	return out
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	for _, p := range Priority {
		if c == p {
			return true
		}
	}
	return false
}

// OrDefault returns c when it is valid, otherwise Default.
func (c Category) OrDefault() Category {
	if c.Valid() {
		return c
	}
	return Default
}

func (c Category) String() string { return string(c) }

// Parse maps a free-form name onto the closed set. Unknown names map to Default.
func Parse(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s))).OrDefault()
}
