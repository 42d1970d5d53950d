package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventOp classifies a store mutation observed on disk.
type EventOp int

const (
	// OpSaved covers both creation and overwrite of a memory file.
	OpSaved EventOp = iota

	// OpDeleted covers removal (or rename away) of a memory file.
	OpDeleted
)

func (op EventOp) String() string {
	switch op {
	case OpSaved:
		return "saved"
	case OpDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is a single observed mutation of the store directory.
type Event struct {
	// ID is the memory id derived from the filename stem.
	ID string

	Op EventOp
}

// Watch emits an Event for every memory-file mutation in the base directory
// until ctx is cancelled. Events are produced by the filesystem, so writes
// from other processes (the desktop shell, a second CLI) are observed too.
// The channel is closed when ctx ends or the underlying watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating store watcher: %w", err)
	}

	if err := watcher.Add(s.baseDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.baseDir, err)
	}

	events := make(chan Event)

	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case fe, ok := <-watcher.Events:
				if !ok {
					return
				}

				name := filepath.Base(fe.Name)
				id, found := strings.CutSuffix(name, fileExt)
				if !found {
					continue
				}

				var op EventOp
				switch {
				case fe.Op.Has(fsnotify.Create) || fe.Op.Has(fsnotify.Write):
					op = OpSaved
				case fe.Op.Has(fsnotify.Remove) || fe.Op.Has(fsnotify.Rename):
					op = OpDeleted
				default:
					continue
				}

				select {
				case events <- Event{ID: id, Op: op}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("store watcher error", "error", err)
			}
		}
	}()

	return events, nil
}
