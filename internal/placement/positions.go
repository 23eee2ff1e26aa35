// Package placement decides where ornaments hang on the tree.
//
// Two layouts live here and never mix:
//   - the calendar layout (PositionFor, Layout) is a fixed lookup from day of
//     month to a coordinate; it is deterministic and collision-free for any
//     single month;
//   - the scatter layout (Scatterer) is for unordered galleries and adds
//     random jitter on purpose.
package placement

import (
	"sort"
	"time"

	"emotree/internal/emotion"
	"emotree/internal/logging"
	"emotree/internal/types"
)

// Position is a coordinate on the 400x500 tree canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MaxDay is the number of slots in the calendar table.
const MaxDay = 31

// dayPositions holds one slot per day of month, index 0 being day 1.
// Rows widen toward the base of the tree.
var dayPositions = [MaxDay]Position{
	{200, 80},
	{150, 100}, {250, 100},
	{120, 130}, {180, 130}, {220, 130}, {280, 130},
	{100, 160}, {140, 160}, {180, 160}, {220, 160}, {260, 160}, {300, 160},
	{90, 200}, {130, 200}, {170, 200}, {210, 200}, {250, 200}, {290, 200}, {330, 200},
	{80, 240}, {120, 240}, {160, 240}, {200, 240}, {240, 240}, {280, 240}, {320, 240},
	{110, 280}, {170, 280}, {230, 280}, {290, 280},
}

// PositionFor returns the slot of a day of month (1..31). Days outside the
// table fall back to the first slot.
func PositionFor(day int) Position {
	if day < 1 || day > MaxDay {
		logging.PlacementDebug("day %d outside table, using slot 0", day)
		return dayPositions[0]
	}
	return dayPositions[day-1]
}

// Table returns a copy of the calendar slots, index 0 being day 1.
func Table() []Position {
	out := make([]Position, MaxDay)
	copy(out, dayPositions[:])
	return out
}

// DayOf returns the day of month of t, or 0 for the zero time.
func DayOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Day()
}

// Ornament is one entry positioned on the tree.
type Ornament struct {
	EntryID   string                `json:"entryId"`
	Day       int                   `json:"day"`
	Position  Position              `json:"position"`
	Kind      emotion.OrnamentKind  `json:"kind"`
	Character emotion.CharacterKind `json:"character"`
	Emotion   emotion.Category      `json:"emotion"`
	Placed    bool                  `json:"placed"`
	// Order is the draw order; later ornaments are drawn on top.
	Order int `json:"order"`
}

// Layout positions a month of entries. Entries are drawn in ascending date
// order; when two entries share a day only the later one keeps the slot.
func Layout(entries []types.Entry) []Ornament {
	sorted := make([]types.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	byDay := make(map[int]types.Entry, len(sorted))
	for _, e := range sorted {
		byDay[DayOf(e.Date)] = e
	}

	out := make([]Ornament, 0, len(byDay))
	for _, e := range sorted {
		day := DayOf(e.Date)
		if byDay[day].ID != e.ID {
			logging.PlacementDebug("entry %s shadowed on day %d by %s", e.ID, day, byDay[day].ID)
			continue
		}
		out = append(out, Ornament{
			EntryID:   e.ID,
			Day:       day,
			Position:  PositionFor(day),
			Kind:      emotion.OrnamentFor(e.Emotion),
			Character: emotion.CharacterFor(e.Emotion),
			Emotion:   e.Emotion,
			Placed:    e.Placed,
			Order:     len(out),
		})
	}
	return out
}
