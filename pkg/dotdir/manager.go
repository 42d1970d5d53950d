// Package dotdir manages the .conduit/ and ~/.conduit directories.
//
// The dot directory holds the persistent config file and, by default, the
// memories/ subdirectory the document store writes into.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the conduit directory.
	dirName = ".conduit"

	// memoriesDirName is the subdirectory holding memory files.
	memoriesDirName = "memories"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .conduit/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.conduit/ dir
//  3. Home ~/.conduit/ dir
//  4. If none found, attempt to create ~/.conduit/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating conduit directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// MemoriesDir resolves the memories/ subdirectory of the target .conduit/
// directory, creating it if absent. This is the store's default base dir.
func (m *Manager) MemoriesDir(overrideDir string) (string, error) {
	target, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(target, memoriesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating memories directory %s: %w", dir, err)
	}

	return dir, nil
}

// localDirExists checks whether a .conduit/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
