// Package pathutil provides path resolution utilities shared by the CLI and GUI.
package pathutil

import (
	"os"
	"path/filepath"
)

// ResolveAbsolutePath converts a user-supplied path to an absolute path.
// It expands a leading ~ to the home directory and resolves symlinks and
// junctions in the existing portion of the path, then appends any components
// that do not exist yet. On Windows user folders are often junction points
// while the target file does not exist yet, so the partial resolution matters.
func ResolveAbsolutePath(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = home + path[1:]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	// Fast path: the whole thing exists.
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved, nil
	}

	// Walk up to the deepest existing ancestor, resolve links there, and
	// re-append the components that are not on disk yet.
	current := absPath
	var remainder []string

	for {
		if _, err := os.Stat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				resolved = current
			}
			for i := len(remainder) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, remainder[i])
			}
			return resolved, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return absPath, nil
		}
		remainder = append(remainder, filepath.Base(current))
		current = parent
	}
}
