package util

import "strconv"

// ParseIntDefault returns def when s is empty or not a number. Path ids use
// def 0, which no entity ever has, so a garbage id behaves as a plain miss.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
