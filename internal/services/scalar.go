package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	monthNameDateRe = regexp.MustCompile(`^(\d{1,2})[-/ ]([A-Za-z]{3,})[-/ ](\d{2,4})$`)
	slashDateRe     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// cleanText collapses whitespace runs to a single space and trims the ends.
func cleanText(value string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
}

// parseNumber reads a float out of loosely formatted cell text. Thousands
// separators are stripped; anything non-numeric or non-finite is nil.
func parseNumber(value string) *float64 {
	cleaned := strings.ReplaceAll(cleanText(value), ",", "")
	if cleaned == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

// parseTriState maps yes/no cell text onto a ternary. Ambiguous text means
// unknown (nil), not an error.
func parseTriState(value string) *bool {
	switch strings.ToLower(cleanText(value)) {
	case "yes", "y", "true":
		v := true
		return &v
	case "no", "n", "false":
		v := false
		return &v
	default:
		return nil
	}
}

// parseFlexibleDate accepts ISO-like layouts, "25-Aug-25" style month names
// and slash-numeric "13/02/25" dates. Slash dates read day-first; the two
// positions flip when only the second value can be a day of month.
func parseFlexibleDate(value string) *time.Time {
	cleaned := cleanText(value)
	if cleaned == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return &parsed
		}
	}

	if m := monthNameDateRe.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, ok := monthByPrefix(m[2]); ok {
			if date, ok := calendarDate(expandYear(m[3]), month, day); ok {
				return &date
			}
		}
	}

	if m := slashDateRe.FindStringSubmatch(cleaned); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if date, ok := calendarDate(expandYear(m[3]), time.Month(month), day); ok {
			return &date
		}
	}

	return nil
}

// expandYear maps two-digit years onto 1900s from 70 up and 2000s below.
func expandYear(text string) int {
	year, _ := strconv.Atoi(text)
	if len(text) <= 2 {
		if year >= 70 {
			return 1900 + year
		}
		return 2000 + year
	}
	return year
}

func monthByPrefix(name string) (time.Month, bool) {
	lowered := strings.ToLower(name)
	if len(lowered) < 3 {
		return 0, false
	}
	prefix := lowered[:3]
	for month := time.January; month <= time.December; month++ {
		if strings.ToLower(month.String()[:3]) == prefix {
			return month, true
		}
	}
	return 0, false
}

// calendarDate builds a UTC date and rejects values time.Date would have
// silently normalized, like February 31.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}
