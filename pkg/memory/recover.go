package memory

import "time"

// recoverable reports whether a decode failure is eligible for recovery
// parsing: the frontmatter was structurally intact but a timestamp value
// failed to parse. Missing id/title/tags never qualify.
func recoverable(err error) bool {
	fe, ok := err.(FormatError)
	return ok && fe.Timestamp
}

// recoverMarkdown attempts a lossy reconstruction of a memory whose strict
// decode failed on a timestamp. It re-extracts id, title, and tags with the
// same permissive per-line scan and substitutes the current time for both
// timestamps. The original timestamps are discarded, a known data-loss
// trade-off, so that old files with broken date formats stay readable
// instead of vanishing from listings.
//
// Returns false when even the permissive extraction fails (missing fence,
// missing id/title/tags); there is no record to recover in that case.
func recoverMarkdown(text string) (Memory, bool) {
	front, body, err := splitFrontmatter(text)
	if err != nil {
		return Memory{}, false
	}

	fields := scanFields(front)

	id, ok := fields["id"]
	if !ok {
		return Memory{}, false
	}

	title, ok := fields["title"]
	if !ok {
		return Memory{}, false
	}

	rawTags, ok := fields["tags"]
	if !ok {
		return Memory{}, false
	}
	tags, ok := parseTags(rawTags)
	if !ok {
		return Memory{}, false
	}

	now := time.Now().UTC()

	return Memory{
		ID:        id,
		Title:     title,
		Content:   body,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}, true
}
