// Package normalize converts raw statement cell values into typed dates
// and signed decimal amounts.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadDate means a cell could not be interpreted as a calendar date.
var ErrBadDate = errors.New("unparseable date")

// Spreadsheet serial dates count days from 1899-12-30 (the Lotus/Excel
// epoch, including its leap-year quirk). Fractional time-of-day is
// truncated.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serial day-counts outside this window are not treated as dates.
const (
	serialMin = 60    // 1900-02-28
	serialMax = 80000 // 2119-01-25
)

// lastChanceLayouts are tried after the explicit numeric forms fail.
var lastChanceLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/1/2",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Date parses a raw cell value into a calendar date at midnight UTC.
// Accepted forms, in priority order: ISO (YYYY-MM-DD), slash-delimited
// (month/day order per dayFirst, forced day-first when the first segment
// exceeds 12), dash-delimited numeric (same convention), spreadsheet
// serial day-counts, then a short list of common textual layouts.
func Date(value string, dayFirst bool) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrBadDate)
	}

	if t, err := time.Parse("2006-1-2", s); err == nil {
		return midnight(t), nil
	}

	if t, ok := parseDelimited(s, "/", dayFirst); ok {
		return t, nil
	}
	if t, ok := parseDelimited(s, "-", dayFirst); ok {
		return t, nil
	}

	if t, ok := parseSerial(s); ok {
		return t, nil
	}

	for _, layout := range lastChanceLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
}

// parseDelimited handles three-part numeric dates with the year last,
// e.g. "1/15/2025" or "15-01-2025". A first segment over 12 cannot be a
// month, so it forces day-first regardless of locale convention.
func parseDelimited(s, sep string, dayFirst bool) (time.Time, bool) {
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	year := nums[2]
	if len(parts[2]) <= 2 {
		year += 2000
	}

	first, second := nums[0], nums[1]
	day, month := second, first
	if dayFirst || first > 12 {
		day, month = first, second
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false // e.g. Feb 30 normalized away
	}
	return t, true
}

func parseSerial(s string) (time.Time, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	days := int(n) // truncate fractional time of day
	if days < serialMin || days > serialMax {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, days), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
