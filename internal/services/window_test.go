package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow_Defaults(t *testing.T) {
	w, err := ResolveWindow("", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-10-01", w.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-10-08", w.End.Format("2006-01-02"), "default end date should be inclusive of its full day")
	assert.Equal(t, "2025-10-07", w.EndDate())
}

func TestResolveWindow_EndDateInclusive(t *testing.T) {
	w, err := ResolveWindow("2025-10-05", "2025-10-05")
	require.NoError(t, err)

	lastMoment := time.Date(2025, 10, 5, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, w.Contains(w.Start), "half-open interval includes its start instant")
	assert.True(t, w.Contains(lastMoment), "the end date's full day is in the window")
	assert.False(t, w.Contains(nextDay), "half-open interval excludes its end instant")
}

func TestResolveWindow_EndBeforeStart(t *testing.T) {
	_, err := ResolveWindow("2025-10-07", "2025-10-01")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindow_UnparseableDates(t *testing.T) {
	_, err := ResolveWindow("not-a-date", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = ResolveWindow("", "2025/10/07")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindow_PartialDefaults(t *testing.T) {
	w, err := ResolveWindow("2025-10-03", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-03", w.StartDate())
	assert.Equal(t, "2025-10-07", w.EndDate())
}
