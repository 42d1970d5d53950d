package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// fileExt is the fixed extension for memory files; filenames are <id>.md.
const fileExt = ".md"

// Store persists memories as one markdown file per record inside baseDir.
//
// Every operation is a synchronous, blocking filesystem call. The store holds
// no locks and no cache: concurrent writers race at the filesystem level
// (last writer wins), and a List snapshot may be inconsistent with a
// simultaneous Save. Callers needing stronger guarantees serialize access
// around a shared instance.
type Store struct {
	baseDir string
	logger  *slog.Logger
}

// Diagnostic records why a file was recovered or skipped during a listing.
// List never fails the whole call for one bad file; diagnostics are the only
// way to learn what was repaired or dropped.
type Diagnostic struct {
	// File is the filename (not full path) of the affected record.
	File string

	// Reason describes the strict-decode failure.
	Reason string

	// Recovered is true when the file was included via recovery parsing,
	// false when it was skipped entirely.
	Recovered bool
}

// NewStore opens (creating if needed) a store over baseDir and runs the
// self-healing pass: any file whose timestamps fail strict decoding but
// whose header is otherwise intact is rewritten in canonical form. A nil
// logger discards all output.
func NewStore(baseDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		baseDir: baseDir,
		logger:  logger,
	}

	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	// Best effort: a heal failure leaves the file for List-time recovery.
	s.healTimestamps()

	return s, nil
}

// BaseDir returns the directory this store reads and writes.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save writes the encoded memory to its file, creating or overwriting
// unconditionally. There is no optimistic-concurrency check and no merge;
// the struct is written exactly as given, UpdatedAt included.
func (s *Store) Save(m Memory) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	path := s.path(m.ID)
	if err := os.WriteFile(path, []byte(EncodeMarkdown(m)), 0o644); err != nil {
		return fmt.Errorf("writing memory %s: %w", m.ID, err)
	}

	return nil
}

// Get reads and strictly decodes the memory for id. A missing file returns
// NotFoundError; a file that fails strict decoding surfaces the FormatError
// directly. Get never recovery-parses: a directly requested record that
// needs repair is an error the caller should see, not something to paper
// over (List takes the opposite stance).
func (s *Store) Get(id string) (Memory, error) {
	if err := s.ensureDir(); err != nil {
		return Memory{}, err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Memory{}, NotFoundError{ID: id}
		}
		return Memory{}, fmt.Errorf("reading memory %s: %w", id, err)
	}

	return DecodeMarkdown(string(data))
}

// Delete removes the file for id. Deleting an absent id returns
// NotFoundError with no side effects.
func (s *Store) Delete(id string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	err := os.Remove(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NotFoundError{ID: id}
		}
		return fmt.Errorf("deleting memory %s: %w", id, err)
	}

	return nil
}

// List returns every decodable memory in the base directory, in directory
// order. Files that fail strict decoding are recovery-parsed when the
// failure is a timestamp problem; files that cannot be recovered are
// silently skipped rather than failing the whole listing.
func (s *Store) List() ([]Memory, error) {
	memories, _, err := s.ListDiagnostics()
	return memories, err
}

// ListDiagnostics is List plus a report of every file that was recovered or
// skipped, for callers that want to know what the silent path dropped.
func (s *Store) ListDiagnostics() ([]Memory, []Diagnostic, error) {
	if err := s.ensureDir(); err != nil {
		return nil, nil, err
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading memory directory %s: %w", s.baseDir, err)
	}

	var memories []Memory
	var diags []Diagnostic

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable memory file", "file", entry.Name(), "error", err)
			diags = append(diags, Diagnostic{File: entry.Name(), Reason: err.Error()})
			continue
		}

		m, err := DecodeMarkdown(string(data))
		if err == nil {
			memories = append(memories, m)
			continue
		}

		if recoverable(err) {
			if fixed, ok := recoverMarkdown(string(data)); ok {
				s.logger.Debug("recovered memory with invalid timestamps", "file", entry.Name())
				memories = append(memories, fixed)
				diags = append(diags, Diagnostic{File: entry.Name(), Reason: err.Error(), Recovered: true})
				continue
			}
		}

		s.logger.Warn("skipping undecodable memory file", "file", entry.Name(), "error", err)
		diags = append(diags, Diagnostic{File: entry.Name(), Reason: err.Error()})
	}

	return memories, diags, nil
}

// Search returns memories whose title, content, or any tag contains the
// query, case-insensitively. Computed as List then filter; there is no
// persistent index.
func (s *Store) Search(query string) ([]Memory, error) {
	memories, err := s.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)

	var matched []Memory
	for _, m := range memories {
		if m.matches(query) {
			matched = append(matched, m)
		}
	}

	return matched, nil
}

// SearchByTag returns memories carrying a tag equal to tag,
// case-insensitively. Same list-then-filter strategy as Search.
func (s *Store) SearchByTag(tag string) ([]Memory, error) {
	memories, err := s.List()
	if err != nil {
		return nil, err
	}

	tag = strings.ToLower(tag)

	var matched []Memory
	for _, m := range memories {
		for _, t := range m.Tags {
			if strings.ToLower(t) == tag {
				matched = append(matched, m)
				break
			}
		}
	}

	return matched, nil
}

func (m Memory) matches(lowerQuery string) bool {
	if strings.Contains(strings.ToLower(m.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Content), lowerQuery) {
		return true
	}
	for _, t := range m.Tags {
		if strings.Contains(strings.ToLower(t), lowerQuery) {
			return true
		}
	}

	return false
}

func (s *Store) path(id string) string {
	return filepath.Join(s.baseDir, id+fileExt)
}

// ensureDir creates the base directory if absent. Every public operation
// calls this so the store works even when the directory was removed out
// from under it.
func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("creating memory directory %s: %w", s.baseDir, err)
	}

	return nil
}

// healTimestamps is the one-time migration pass run at open: files whose
// timestamps fail strict decoding are recovery-parsed and rewritten in
// canonical encoding so later reads decode cleanly. Original timestamps are
// lost in the rewrite; see recoverMarkdown. Failures are logged and left
// for List-time recovery.
func (s *Store) healTimestamps() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		s.logger.Warn("skipping self-heal pass", "dir", s.baseDir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		_, err = DecodeMarkdown(string(data))
		if err == nil || !recoverable(err) {
			continue
		}

		fixed, ok := recoverMarkdown(string(data))
		if !ok {
			continue
		}

		if err := os.WriteFile(path, []byte(EncodeMarkdown(fixed)), 0o644); err != nil {
			s.logger.Warn("could not rewrite memory file", "file", entry.Name(), "error", err)
			continue
		}

		s.logger.Info("repaired memory file with invalid timestamps", "file", entry.Name())
	}
}
