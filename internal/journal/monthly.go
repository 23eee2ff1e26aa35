package journal

import (
	"context"
	"fmt"
	"time"

	"emotree/internal/calendar"
	"emotree/internal/emotion"
	"emotree/internal/logging"
	"emotree/internal/types"
)

// SummarizeMonth tallies entries into a monthly reflection. The dominant
// emotion is the most frequent one, ties broken by category priority; the
// text is the dominant emotion's reflection at the month's average intensity.
func SummarizeMonth(year, month int, entries []types.Entry, gen *emotion.ReflectionGenerator) types.MonthlyReflection {
	r := types.MonthlyReflection{
		Year:       year,
		Month:      month,
		EntryCount: len(entries),
		Dominant:   emotion.Default,
		Counts:     make(map[emotion.Category]int),
	}
	if len(entries) == 0 {
		return r
	}

	var sum float64
	for _, e := range entries {
		r.Counts[e.Emotion]++
		sum += e.Intensity
	}
	r.AverageIntensity = sum / float64(len(entries))

	best := 0
	for _, c := range emotion.Priority {
		if n := r.Counts[c]; n > best {
			best = n
			r.Dominant = c
		}
	}
	r.Text = gen.Generate(r.Dominant, r.AverageIntensity)
	return r
}

// ComposeMonthlyReflection summarizes a month's entries and stores the result,
// replacing any earlier reflection for that month.
func (s *Session) ComposeMonthlyReflection(ctx context.Context, year, month int) (types.MonthlyReflection, error) {
	entries, err := s.MonthEntries(ctx, year, month)
	if err != nil {
		return types.MonthlyReflection{}, err
	}
	if len(entries) == 0 {
		return types.MonthlyReflection{}, fmt.Errorf("%w: %s", ErrEmptyMonth, types.MonthKey(year, time.Month(month)))
	}

	r := SummarizeMonth(year, month, entries, s.reflections)
	r.CreatedAt = s.now()
	if err := s.store.SaveMonthlyReflection(ctx, r); err != nil {
		return types.MonthlyReflection{}, fmt.Errorf("save monthly reflection: %w", err)
	}
	logging.Session("Monthly reflection %s: %d entries, dominant %s", r.Key(), r.EntryCount, r.Dominant)
	logging.Audit().ReflectionComposed(r.Key(), r.EntryCount, string(r.Dominant))
	return r, nil
}

// MonthlyReflection returns the stored reflection for a month.
func (s *Session) MonthlyReflection(ctx context.Context, year, month int) (types.MonthlyReflection, error) {
	if !calendar.ValidMonth(month) {
		return types.MonthlyReflection{}, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	return s.store.GetMonthlyReflection(ctx, year, time.Month(month))
}
