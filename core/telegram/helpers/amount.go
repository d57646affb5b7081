package helpers

import (
	"strconv"
	"strings"
)

// ParseAmount parses a user-typed monetary amount. It accepts both "." and
// "," as the decimal separator and rejects non-positive values.
func ParseAmount(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParsePositiveInt parses a user-typed positive integer such as a rating value.
func ParsePositiveInt(input string) (int, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
