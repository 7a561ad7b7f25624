package persist

import (
	"fmt"
	"regexp"
)

// Category identifies one kind of persisted history. The set is closed;
// each category owns one file per scope directory.
type Category int

const (
	CategoryCommands Category = iota
	CategorySearch
	CategoryFiles
	CategoryClipboard
	CategorySplits
)

var categoryNames = [...]string{"commands", "search", "files", "clipboard", "splits"}

var categoryFilenames = [...]string{
	CategoryCommands:  "command_history",
	CategorySearch:    "search_history",
	CategoryFiles:     "file_history",
	CategoryClipboard: "clipboard",
	CategorySplits:    "splits",
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{CategoryCommands, CategorySearch, CategoryFiles, CategoryClipboard, CategorySplits}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Filename returns the fixed file name for the category inside its scope
// directory.
func (c Category) Filename() string {
	return categoryFilenames[c]
}

// ParseCategory maps a user-facing category name to its Category.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("persist: unknown category %q", s)
}

// Options are the effective settings for one category.
type Options struct {
	Enabled    bool
	MaxEntries int
	Scope      Scope
}

// Config holds the two-level persistence settings: All is the mandatory
// default, the per-category pointers are optional overrides that replace
// the whole triple when present. Exclude patterns filter file-history
// recording.
type Config struct {
	All       Options
	Commands  *Options
	Search    *Options
	Files     *Options
	Clipboard *Options
	Splits    *Options
	Exclude   []*regexp.Regexp
}

func (c *Config) override(cat Category) *Options {
	switch cat {
	case CategoryCommands:
		return c.Commands
	case CategorySearch:
		return c.Search
	case CategoryFiles:
		return c.Files
	case CategoryClipboard:
		return c.Clipboard
	case CategorySplits:
		return c.Splits
	default:
		return nil
	}
}

// Resolve returns the effective options for a category: the category's
// override when set, otherwise the All default.
func (c *Config) Resolve(cat Category) Options {
	if o := c.override(cat); o != nil {
		return *o
	}
	return c.All
}

// Enabled reports whether persistence is on for the category.
func (c *Config) Enabled(cat Category) bool {
	return c.Resolve(cat).Enabled
}

// MaxEntries returns the category's entry cap.
func (c *Config) MaxEntries(cat Category) int {
	return c.Resolve(cat).MaxEntries
}

// Excluded reports whether a path matches any file-history exclusion
// pattern.
func (c *Config) Excluded(path string) bool {
	for _, re := range c.Exclude {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// ForceDir pins every category to an explicit directory, ignoring
// configured scopes. Used by callers that operate on a known directory,
// such as tests and scripting.
func (c *Config) ForceDir(dir string) {
	scope := DirScope(dir)
	c.All.Scope = scope
	for _, o := range []*Options{c.Commands, c.Search, c.Files, c.Clipboard, c.Splits} {
		if o != nil {
			o.Scope = scope
		}
	}
}
