package memory

import (
	"fmt"
	"strings"
	"time"
)

// On-disk layout: a "---" fenced frontmatter block with one key per line,
// a blank line, then the body verbatim.
//
//	---
//	id: <string>
//	title: <string>
//	tags: [<comma-separated strings>]
//	created_at: <timestamp>
//	updated_at: <timestamp>
//	---
//
//	<body>
const (
	frontmatterOpen  = "---\n"
	frontmatterClose = "\n---\n\n"
)

// timestampLayouts are tried in order when decoding. The first is the
// canonical encode format; the rest exist for files written by older
// versions. The naive layout carries no offset and is read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// EncodeMarkdown renders a memory in the canonical on-disk form.
// Timestamps are always written as RFC 3339.
func EncodeMarkdown(m Memory) string {
	var b strings.Builder

	b.WriteString(frontmatterOpen)
	fmt.Fprintf(&b, "id: %s\n", m.ID)
	fmt.Fprintf(&b, "title: %s\n", m.Title)
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(m.Tags, ", "))
	fmt.Fprintf(&b, "created_at: %s\n", m.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "updated_at: %s\n", m.UpdatedAt.Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(m.Content)

	return b.String()
}

// DecodeMarkdown parses the canonical form back into a Memory. Decode
// round-trips everything EncodeMarkdown writes except tag whitespace (tags
// are trimmed). Failures return a FormatError naming the violated field;
// decode never panics on file content.
func DecodeMarkdown(text string) (Memory, error) {
	front, body, err := splitFrontmatter(text)
	if err != nil {
		return Memory{}, err
	}

	fields := scanFields(front)

	id, ok := fields["id"]
	if !ok {
		return Memory{}, missingFieldError("id")
	}

	title, ok := fields["title"]
	if !ok {
		return Memory{}, missingFieldError("title")
	}

	rawTags, ok := fields["tags"]
	if !ok {
		return Memory{}, missingFieldError("tags")
	}
	tags, ok := parseTags(rawTags)
	if !ok {
		return Memory{}, missingFieldError("tags")
	}

	createdAt, err := parseTimestampField(fields, "created_at")
	if err != nil {
		return Memory{}, err
	}

	updatedAt, err := parseTimestampField(fields, "updated_at")
	if err != nil {
		return Memory{}, err
	}

	return Memory{
		ID:        id,
		Title:     title,
		Content:   body,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// splitFrontmatter separates the header block from the body. The text must
// open with the frontmatter fence; the header ends at the first close fence
// followed by a blank line.
func splitFrontmatter(text string) (front, body string, err error) {
	rest, ok := strings.CutPrefix(text, frontmatterOpen)
	if !ok {
		return "", "", FormatError{Field: "frontmatter", Detail: "missing frontmatter header"}
	}

	front, body, ok = strings.Cut(rest, frontmatterClose)
	if !ok {
		return "", "", FormatError{Field: "frontmatter", Detail: "missing body separator"}
	}

	return front, body, nil
}

// scanFields runs the per-line key scan over the header block. Keys require
// a ": " separator; the first occurrence of a key wins.
func scanFields(front string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(front, "\n") {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = value
	}

	return fields
}

// parseTags splits a bracketed, comma-separated tag list. An empty bracket
// pair decodes to an empty sequence. Individual tags are trimmed; duplicates
// and interior whitespace survive.
func parseTags(raw string) ([]string, bool) {
	inner, ok := strings.CutPrefix(raw, "[")
	if !ok {
		return nil, false
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return nil, false
	}

	if strings.TrimSpace(inner) == "" {
		return []string{}, true
	}

	parts := strings.Split(inner, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}

	return tags, true
}

func parseTimestampField(fields map[string]string, field string) (time.Time, error) {
	raw, ok := fields[field]
	if !ok {
		return time.Time{}, missingFieldError(field)
	}

	t, ok := parseTimestamp(raw)
	if !ok {
		return time.Time{}, timestampError(field, raw)
	}

	return t, nil
}

// parseTimestamp tries each supported layout in fixed order and normalizes
// the result to UTC.
func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
