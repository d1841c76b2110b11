package utils

import "strings"

// ShortID returns the first 8 hex digits of a UUID, for tables and log fields.
//
// Example:
//   - Input: "a3f8e2b1-9c4d-4e5f-8a7b-1c2d3e4f5a6b"
//   - Output: "a3f8e2b1"
func ShortID(id string) string {
	hex := strings.ReplaceAll(id, "-", "")
	if len(hex) > 8 {
		return hex[:8]
	}
	return hex
}
