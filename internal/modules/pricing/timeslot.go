package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// annotationPattern matches a parenthetical with no digits, like "(local time)".
	annotationPattern = regexp.MustCompile(`\([^()0-9]*\)`)
	rangeSeparator    = regexp.MustCompile(`(?i)\s+-\s+|-|–|—|\bto\b|\btill\b`)
	timePattern       = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?(?:\s*([AaPp])\.?\s?[Mm]\.?)?`)
)

// NormalizeTime converts the start of a time-of-day or time-range string into 24-hour
// "HH:MM". Inputs with no recognizable time are returned unchanged.
func NormalizeTime(s string) string {
	cleaned := annotationPattern.ReplaceAllString(s, " ")
	cleaned = strings.NewReplacer("(", " ", ")", " ").Replace(cleaned)
	start := strings.TrimSpace(rangeSeparator.Split(cleaned, 2)[0])

	for _, m := range timePattern.FindAllStringSubmatch(start, -1) {
		hourStr, minStr, meridiem := m[1], m[2], strings.ToLower(m[3])
		if minStr == "" && meridiem == "" {
			continue
		}
		hour, _ := strconv.Atoi(hourStr)
		minute := 0
		if minStr != "" {
			minute, _ = strconv.Atoi(minStr)
		}
		switch meridiem {
		case "a":
			if hour == 12 {
				hour = 0
			}
		case "p":
			if hour >= 1 && hour <= 11 {
				hour += 12
			}
		}
		if hour > 23 || minute > 59 {
			return s
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return s
}

// SameStartTime reports whether two time strings normalize to the same value.
func SameStartTime(a, b string) bool {
	return NormalizeTime(a) == NormalizeTime(b)
}
