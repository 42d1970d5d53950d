package memory

import "fmt"

// NotFoundError is returned when no file exists for a requested memory id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "memory not found"
	}

	return "memory not found: " + e.ID
}

// FormatError describes a frontmatter decode failure. Each violated rule
// produces a distinct error naming the offending field so callers (and
// tests) can tell a missing key from a malformed value.
type FormatError struct {
	// Field is the frontmatter field or structural rule that was violated
	// (e.g. "tags", "created_at", "frontmatter").
	Field string

	// Detail is a human-readable description of the violation.
	Detail string

	// Timestamp is true when the field was present but its value failed to
	// parse as a timestamp. Recovery parsing applies only to these errors,
	// never to structurally missing fields.
	Timestamp bool
}

func (e FormatError) Error() string {
	return fmt.Sprintf("invalid memory format: %s", e.Detail)
}

func missingFieldError(field string) FormatError {
	return FormatError{
		Field:  field,
		Detail: "missing " + field,
	}
}

func timestampError(field, value string) FormatError {
	return FormatError{
		Field:     field,
		Detail:    fmt.Sprintf("invalid %s format: %s", field, value),
		Timestamp: true,
	}
}
