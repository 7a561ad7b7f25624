package persist

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ScopeKind selects which directory holds a category's history file.
type ScopeKind int

const (
	// ScopeGlobal stores history in the process-wide state directory.
	ScopeGlobal ScopeKind = iota
	// ScopeWorkspace stores history in a per-workspace subdirectory of the
	// state directory.
	ScopeWorkspace
	// ScopeDir stores history in an explicitly configured directory.
	ScopeDir
)

// Scope is a directory policy for persisted history. Dir is only meaningful
// for ScopeDir.
type Scope struct {
	Kind ScopeKind
	Dir  string
}

// GlobalScope returns the global-directory scope.
func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

// WorkspaceScope returns the per-workspace scope.
func WorkspaceScope() Scope {
	return Scope{Kind: ScopeWorkspace}
}

// DirScope returns a scope pinned to an explicit directory.
func DirScope(dir string) Scope {
	return Scope{Kind: ScopeDir, Dir: dir}
}

// WorkspaceFunc reports the current workspace root. It is injected so the
// store never probes the environment itself.
type WorkspaceFunc func() (string, error)

// Resolver maps a Scope to a concrete directory. StateDir is the
// process-wide persistence root; Workspace supplies the workspace root for
// ScopeWorkspace and may be nil when that scope is never used.
type Resolver struct {
	StateDir  string
	Workspace WorkspaceFunc
}

// Dir resolves the directory for the given scope.
func (r Resolver) Dir(s Scope) (string, error) {
	switch s.Kind {
	case ScopeGlobal:
		return r.StateDir, nil
	case ScopeWorkspace:
		if r.Workspace == nil {
			return "", fmt.Errorf("persist: workspace scope with no workspace detector")
		}
		root, err := r.Workspace()
		if err != nil {
			return "", fmt.Errorf("persist: detect workspace: %w", err)
		}
		return filepath.Join(r.StateDir, flattenRoot(root)), nil
	case ScopeDir:
		return s.Dir, nil
	default:
		return "", fmt.Errorf("persist: unknown scope kind %d", s.Kind)
	}
}

// flattenRoot turns an absolute workspace root into a flat directory name:
// the leading separator is stripped and every remaining separator becomes
// '%'. Distinct roots can collide in theory, but in practice the mapping is
// stable and readable.
func flattenRoot(root string) string {
	sep := string(filepath.Separator)
	root = strings.TrimPrefix(root, sep)
	return strings.ReplaceAll(root, sep, "%")
}
