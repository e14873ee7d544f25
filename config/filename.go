package config

import (
	"strings"
	"unicode"
)

const badFileName = "_bad_file_name_"

// CleanFileName makes in usable as a single path segment on the current
// platform: reserved and control characters are dropped, so are leading dots
// and trailing spaces.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(reservedNameChars, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, "."), " ")
	if len(out) == 0 {
		return badFileName
	}
	return out
}
