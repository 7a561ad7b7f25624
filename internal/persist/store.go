// Package persist is the persistence core: it routes history categories to
// their backing files, resolves scope directories, and exposes the
// push/read/trim operations the editor layer drives. Each operation opens,
// reads or appends, and closes its file; the store keeps no in-memory
// cache, so concurrent appends from separate processes stay safe while
// racing trims are last-writer-wins.
package persist

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/relicdev/relic/internal/histfile"
)

// Store routes categories to history files under the configured scopes.
type Store struct {
	cfg Config
	res Resolver
}

// NewStore creates a store over the given configuration. The resolver's
// state dir and workspace detector are injected by the caller.
func NewStore(cfg Config, res Resolver) *Store {
	return &Store{cfg: cfg, res: res}
}

// Config returns the store's effective configuration.
func (s *Store) Config() *Config {
	return &s.cfg
}

// FilePath resolves the backing file for a category and ensures its parent
// directory exists. Directory-creation failures surface as store errors.
func (s *Store) FilePath(cat Category) (string, error) {
	dir, err := s.res.Dir(s.cfg.Resolve(cat).Scope)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("persist: create scope dir %s: %w", dir, err)
	}
	return filepath.Join(dir, cat.Filename()), nil
}

// PushFileHistory appends a file-history entry. Paths matching an
// exclusion pattern are skipped silently; that is an intentional filter,
// not an error.
func (s *Store) PushFileHistory(entry FileHistoryEntry) error {
	if s.cfg.Excluded(entry.Path) {
		slog.Debug("persist: skipping excluded path", "path", entry.Path)
		return nil
	}
	path, err := s.FilePath(CategoryFiles)
	if err != nil {
		return err
	}
	return histfile.Push(fileCodec, path, entry)
}

// ReadFileHistory returns file-history entries in stored (oldest first)
// order; consumers select by path, not recency.
func (s *Store) ReadFileHistory() ([]FileHistoryEntry, error) {
	path, err := s.FilePath(CategoryFiles)
	if err != nil {
		return nil, err
	}
	return histfile.ReadAll(fileCodec, path)
}

// TrimFileHistory caps the file-history file at its configured maximum.
func (s *Store) TrimFileHistory() error {
	path, err := s.FilePath(CategoryFiles)
	if err != nil {
		return err
	}
	return histfile.Trim(fileCodec, path, s.cfg.MaxEntries(CategoryFiles))
}

// PushRegisterHistory appends a line to the history backing the given
// register: ':' for commands, '/' for search. Other registers are not
// persisted.
func (s *Store) PushRegisterHistory(register rune, line string) error {
	var cat Category
	switch register {
	case ':':
		cat = CategoryCommands
	case '/':
		cat = CategorySearch
	default:
		slog.Debug("persist: register not persisted", "register", string(register))
		return nil
	}
	path, err := s.FilePath(cat)
	if err != nil {
		return err
	}
	return histfile.Push(lineCodec, path, line)
}

func (s *Store) readLines(cat Category) ([]string, error) {
	path, err := s.FilePath(cat)
	if err != nil {
		return nil, err
	}
	return histfile.ReadAll(lineCodec, path)
}

func (s *Store) trimLines(cat Category) error {
	path, err := s.FilePath(cat)
	if err != nil {
		return err
	}
	return histfile.Trim(lineCodec, path, s.cfg.MaxEntries(cat))
}

// ReadCommandHistory returns command lines newest first, the order
// interactive recall steps through them.
func (s *Store) ReadCommandHistory() ([]string, error) {
	lines, err := s.readLines(CategoryCommands)
	if err != nil {
		return nil, err
	}
	reverse(lines)
	return lines, nil
}

// TrimCommandHistory caps the command history at its configured maximum.
func (s *Store) TrimCommandHistory() error {
	return s.trimLines(CategoryCommands)
}

// ReadSearchHistory returns search lines newest first.
func (s *Store) ReadSearchHistory() ([]string, error) {
	lines, err := s.readLines(CategorySearch)
	if err != nil {
		return nil, err
	}
	reverse(lines)
	return lines, nil
}

// TrimSearchHistory caps the search history at its configured maximum.
func (s *Store) TrimSearchHistory() error {
	return s.trimLines(CategorySearch)
}

// WriteClipboard replaces the persisted register contents with the given
// values. The clipboard is persisted as a whole list, never incrementally.
func (s *Store) WriteClipboard(values []string) error {
	path, err := s.FilePath(CategoryClipboard)
	if err != nil {
		return err
	}
	return histfile.WriteAll(lineCodec, path, values)
}

// ReadClipboard returns the persisted register contents in stored order.
func (s *Store) ReadClipboard() ([]string, error) {
	return s.readLines(CategoryClipboard)
}

// PushSplitEntry appends a named layout snapshot. An entry with an
// already-used name is appended anyway; duplicates accumulate until the
// next trim.
func (s *Store) PushSplitEntry(entry SplitEntry) error {
	path, err := s.FilePath(CategorySplits)
	if err != nil {
		return err
	}
	return histfile.Push(splitCodec, path, entry)
}

// ReadSplits returns all stored layout snapshots in append order.
func (s *Store) ReadSplits() ([]SplitEntry, error) {
	path, err := s.FilePath(CategorySplits)
	if err != nil {
		return nil, err
	}
	return histfile.ReadAll(splitCodec, path)
}

// TrimSplits reduces the splits file to at most the configured number of
// distinct names. Entries are scanned in file order with later same-name
// entries replacing earlier ones, and the scan stops as soon as the map
// holds max names; entries past that point are not observed even though
// they are newer. Retained order is unspecified. This mirrors the
// historical single-pass policy on purpose.
func (s *Store) TrimSplits() error {
	entries, err := s.ReadSplits()
	if err != nil {
		return err
	}
	max := s.cfg.MaxEntries(CategorySplits)
	if len(entries) < max {
		return nil
	}

	keep := make(map[string]SplitEntry, max)
	for _, entry := range entries {
		keep[entry.Name] = entry
		if len(keep) == max {
			break
		}
	}

	retained := make([]SplitEntry, 0, len(keep))
	for _, entry := range keep {
		retained = append(retained, entry)
	}

	path, err := s.FilePath(CategorySplits)
	if err != nil {
		return err
	}
	return histfile.WriteAll(splitCodec, path, retained)
}

// Trim trims one category with its own policy.
func (s *Store) Trim(cat Category) error {
	switch cat {
	case CategoryCommands:
		return s.TrimCommandHistory()
	case CategorySearch:
		return s.TrimSearchHistory()
	case CategoryFiles:
		return s.TrimFileHistory()
	case CategoryClipboard:
		// The clipboard is a whole-list rewrite; there is nothing to trim.
		return nil
	case CategorySplits:
		return s.TrimSplits()
	default:
		return fmt.Errorf("persist: unknown category %d", cat)
	}
}

func reverse(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}
