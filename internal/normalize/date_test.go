package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate_EquivalentForms(t *testing.T) {
	// All supported forms of the same calendar date.
	want := day(2025, time.January, 15)
	for _, in := range []string{"2025-01-15", "1/15/2025", "15-01-2025", "45672", "Jan 15, 2025", "15 Jan 2025"} {
		got, err := Date(in, false)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestDate_ISO(t *testing.T) {
	got, err := Date("2025-03-07", false)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 7), got)
}

func TestDate_SlashLocale(t *testing.T) {
	// Ambiguous slash dates follow the configured month/day convention.
	us, err := Date("03/04/2025", false)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 4), us)

	uk, err := Date("03/04/2025", true)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.April, 3), uk)
}

func TestDate_SlashForcedDayFirst(t *testing.T) {
	// A first segment over 12 cannot be a month.
	got, err := Date("25/12/2024", false)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.December, 25), got)
}

func TestDate_TwoDigitYear(t *testing.T) {
	got, err := Date("1/15/25", false)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.January, 15), got)
}

func TestDate_SerialTruncatesFraction(t *testing.T) {
	got, err := Date("45672.75", false)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.January, 15), got)
}

func TestDate_SerialOutOfRange(t *testing.T) {
	_, err := Date("12", false)
	assert.ErrorIs(t, err, ErrBadDate)

	_, err = Date("4500000", false)
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestDate_ImpossibleCalendarDate(t *testing.T) {
	_, err := Date("30/02/2025", false)
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestDate_Garbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "--", "1/2"} {
		_, err := Date(in, false)
		assert.ErrorIs(t, err, ErrBadDate, "input %q", in)
	}
}

func TestDate_LastChanceLayouts(t *testing.T) {
	got, err := Date("2025-06-30 14:22:01", false)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.June, 30), got, "time component dropped")
}
