package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewValidation(t *testing.T) {
	_, err := New(day(2026, time.May, 10), day(2026, time.May, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(day(2026, time.May, 11), day(2026, time.May, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Later clock time on the same calendar day is still zero nights.
	_, err = New(
		time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 18, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, ErrInvalidRange)

	dr, err := New(day(2026, time.May, 10), day(2026, time.May, 13))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Days())
}

func TestDaysAcrossMonthBoundary(t *testing.T) {
	dr, err := New(day(2026, time.January, 30), day(2026, time.February, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Days())
}

func TestEachDay(t *testing.T) {
	dr, err := New(day(2026, time.February, 27), day(2026, time.March, 2))
	require.NoError(t, err)

	var visited []time.Time
	require.NoError(t, dr.EachDay(func(d time.Time) error {
		visited = append(visited, d)
		return nil
	}))
	require.Len(t, visited, 3)
	assert.Equal(t, day(2026, time.February, 27), visited[0])
	assert.Equal(t, day(2026, time.February, 28), visited[1])
	assert.Equal(t, day(2026, time.March, 1), visited[2])

	// The walk restarts cleanly on a second pass.
	count := 0
	require.NoError(t, dr.EachDay(func(time.Time) error {
		count++
		return nil
	}))
	assert.Equal(t, 3, count)
}

func TestOverlapsAndContainsDate(t *testing.T) {
	a, _ := New(day(2026, time.May, 1), day(2026, time.May, 10))
	b, _ := New(day(2026, time.May, 9), day(2026, time.May, 12))
	c, _ := New(day(2026, time.May, 10), day(2026, time.May, 12))

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c)) // half-open: dropoff day is free

	assert.True(t, a.ContainsDate(day(2026, time.May, 1)))
	assert.True(t, a.ContainsDate(day(2026, time.May, 9)))
	assert.False(t, a.ContainsDate(day(2026, time.May, 10)))
}
