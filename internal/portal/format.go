package portal

import (
	"regexp"
	"strings"
	"unicode"
)

var spaceRun = regexp.MustCompile(`\s+`)

// FormatRaceTime rewrites a scanned time like "1:23.45" into the portal's
// fixed-width digit convention: five digits (m ss hh) for most races, six
// (mm ss hh) when the race name contains "500". Non-digits are dropped,
// the rightmost digits win when the input is too long, and the result is
// zero-padded to the full width.
func FormatRaceTime(t, raceName string) string {
	width := 5
	if strings.Contains(strings.ToLower(raceName), "500") {
		width = 6
	}

	var b strings.Builder
	for _, r := range t {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > width {
		digits = digits[len(digits)-width:]
	}

	return strings.Repeat("0", width-len(digits)) + digits
}

// FormatSwimmerName rewrites a roster-style "First Last" name into the
// "Last, First" form the portal's autocomplete expects. The final token is
// treated as the surname; single-token names pass through unchanged.
func FormatSwimmerName(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return strings.TrimSpace(name)
	}
	last := fields[len(fields)-1]
	return last + ", " + strings.Join(fields[:len(fields)-1], " ")
}

// CleanCell flattens a scraped table cell: line breaks become spaces,
// whitespace runs collapse to one, and the ends are trimmed.
func CleanCell(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// StripDecoration removes the "Power Points" blurb the portal appends to
// opponent cells, so scraped values are deterministic instead of relying
// on display-side truncation.
func StripDecoration(s string) string {
	if i := strings.Index(s, "Power Points"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
