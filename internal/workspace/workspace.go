// Package workspace locates the workspace root for per-workspace history
// scoping.
package workspace

import (
	"os"
	"path/filepath"
)

// Marker directories that identify a workspace root.
var markers = []string{".git", ".svn", ".jj", ".hg", ".relic"}

// Find walks from dir toward the filesystem root looking for a workspace
// marker. It returns the first directory containing one, or dir itself with
// found=false when no ancestor matches.
func Find(dir string) (root string, found bool) {
	for current := dir; ; {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, false
		}
		current = parent
	}
}

// FindFromWd is Find anchored at the current working directory.
func FindFromWd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, _ := Find(wd)
	return root, nil
}
