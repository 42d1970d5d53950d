// Package memory provides the flat-file document store at the heart of the
// conduit system.
//
// A [Memory] is a short textual note: title, body, tags, and two timestamps.
// Each memory is persisted as a single markdown file with a frontmatter
// header, one file per id, inside a base directory owned by a [Store].
//
// The store is a dumb persister: it never mutates ids or timestamps on save,
// holds no in-memory cache, and re-touches the filesystem on every call.
// Callers that need cross-operation atomicity must serialize access
// themselves; the store makes no concurrency guarantees beyond what the
// filesystem provides.
package memory

import (
	"time"

	"github.com/google/uuid"
)

// Memory is a single persisted note.
type Memory struct {
	// ID is the opaque unique identifier, minted once at construction and
	// never regenerated by the store. It doubles as the filename stem.
	ID string `json:"id"`

	// Title is free text and may be empty.
	Title string `json:"title"`

	// Content is the note body, verbatim, newlines included.
	Content string `json:"content"`

	// Tags is an ordered list of free-text labels. Duplicates are allowed;
	// search compares tags case-insensitively.
	Tags []string `json:"tags"`

	// CreatedAt and UpdatedAt are set to now at construction. Save writes
	// whatever is in the struct and never bumps UpdatedAt on its own, so a
	// re-save without touching the field leaves it stale. That is the
	// caller's responsibility, not the store's.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New constructs a Memory with a fresh UUID and both timestamps set to the
// current UTC time.
func New(title, content string, tags []string) Memory {
	now := time.Now().UTC()
	return Memory{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch sets UpdatedAt to the current UTC time. Callers re-saving an edited
// memory are expected to call this themselves; Save never does.
func (m *Memory) Touch() {
	m.UpdatedAt = time.Now().UTC()
}
