// Package util holds small generic helpers shared across the vault engine
// packages.
package util

import (
	"strings"
)

// ParseCommaSeparated splits raw on commas, trims whitespace, and drops
// empty fields. Used for the --tags flag on import.
func ParseCommaSeparated(raw string) []string {
	res := make([]string, 0, 8)

	split := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' })
	for _, s := range split {
		if l := strings.TrimSpace(s); len(l) > 0 {
			res = append(res, l)
		}
	}

	return res
}
