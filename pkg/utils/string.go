package utils

// Truncate is a simple string truncate that appends an ellipsis when the
// string exceeds maxLen bytes.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
