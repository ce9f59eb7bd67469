// Package textutil holds small rune-aware string helpers.
package textutil

import "unicode"

// Prefix returns the first n runes of s. n <= 0 returns s unchanged.
func Prefix(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// NonSpaceLen counts the runes of s that are not whitespace.
func NonSpaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
