package inspect

import "strings"

// IsBlocked reports whether body contains needle as a contiguous,
// case-sensitive substring. An empty needle blocks nothing.
func IsBlocked(body, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(body, needle)
}
