package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2025, time.April, 30},
		{2025, time.December, 31},
		{2025, time.January, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 7, 18, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 7, 18, 0, 1, 0, 0, time.UTC)
	c := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))

	// b is compared in a's location
	tokyo := time.FixedZone("JST", 9*3600)
	assert.True(t, SameDay(c.In(tokyo), a.In(tokyo)), "both fall on the 19th in Tokyo")
}

func TestNormalize(t *testing.T) {
	in := time.Date(2025, 7, 18, 23, 59, 30, 987654321, time.UTC)
	got := Normalize(in)

	assert.Equal(t, time.Local, got.Location())
	assert.Zero(t, got.Nanosecond())
	assert.True(t, got.Equal(in.Truncate(time.Second)))
}

func TestGrid(t *testing.T) {
	// June 2025 starts on a Sunday and has 30 days
	rows := Grid(2025, time.June)
	require.Len(t, rows, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, rows[0])
	assert.Equal(t, []int{29, 30}, rows[4])

	// July 2025 starts on a Tuesday
	rows = Grid(2025, time.July)
	assert.Equal(t, []int{0, 0, 1, 2, 3, 4, 5}, rows[0])
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(0))
	assert.False(t, ValidMonth(13))
}
