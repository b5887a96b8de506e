package experience

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const daysPerYear = 365.25

// UnparsedDurationYears is credited for a non-empty duration that matches no
// known form.
const UnparsedDurationYears = 1.0

var (
	monthRangeRe = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?\s+(\d{4})\s*(?:-|–|to)?\s*(?:([a-z]{3,9})\.?\s+(\d{4})|(present|current|now|till\s+date))`)
	yearRangeRe  = regexp.MustCompile(`(?i)\b(\d{4})\s*(?:-|–|to)\s*(?:(\d{4})|(present|current|now|till\s+date))\b`)
	yearsRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:years?|yrs?)\b(?:\s*(?:and\s*)?(\d+)\s*(?:months?|mos?)\b)?`)
	monthsRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:months?|mos?)\b`)
)

// monthLayouts are tried in order when parsing "Jun 2023" style dates.
var monthLayouts = []string{"Jan 2006", "January 2006"}

// ParseDuration converts a duration string into years using the current
// time for open-ended ranges. See ParseDurationAt.
func ParseDuration(s string) float64 {
	return ParseDurationAt(s, time.Now())
}

// ParseDurationAt converts a duration string into years. Empty input is 0
// and anything unrecognized is UnparsedDurationYears.
func ParseDurationAt(s string, now time.Time) float64 {
	years, err := ParseDurationStrict(s, now)
	if err != nil {
		return UnparsedDurationYears
	}
	return years
}

// ParseDurationStrict is ParseDurationAt without the fallback. Supported
// forms, in the order tried:
//
//	Jun 2023 - Aug 2023, Jun 2023 - Present
//	2020 - 2022, 2021 - Present
//	2 years 6 months, 3 yrs
//	6 months
func ParseDurationStrict(s string, now time.Time) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if m := monthRangeRe.FindStringSubmatch(s); m != nil {
		start, err := parseMonth(m[1], m[2])
		if err == nil {
			end := now
			if m[5] == "" {
				end, err = parseMonth(m[3], m[4])
			}
			if err == nil {
				return spanYears(start, end), nil
			}
		}
	}

	if m := yearRangeRe.FindStringSubmatch(s); m != nil {
		startYear, _ := strconv.Atoi(m[1])
		start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		if m[3] != "" {
			return spanYears(start, now), nil
		}
		endYear, _ := strconv.Atoi(m[2])
		return abs(float64(endYear - startYear)), nil
	}

	if m := yearsRe.FindStringSubmatch(s); m != nil {
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, &DurationError{Input: s, Cause: err}
		}
		if m[2] != "" {
			months, _ := strconv.Atoi(m[2])
			years += float64(months) / 12
		}
		return years, nil
	}

	if m := monthsRe.FindStringSubmatch(s); m != nil {
		months, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, &DurationError{Input: s, Cause: err}
		}
		return months / 12, nil
	}

	return 0, &DurationError{Input: s}
}

func parseMonth(month, year string) (time.Time, error) {
	month = strings.ToLower(month)
	if month == "sept" {
		month = "sep"
	}
	var lastErr error
	for _, layout := range monthLayouts {
		t, err := time.Parse(layout, month+" "+year)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func spanYears(start, end time.Time) float64 {
	return abs(end.Sub(start).Hours()/24) / daysPerYear
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
