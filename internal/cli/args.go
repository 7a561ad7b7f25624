package cli

import (
	"fmt"

	"github.com/relicdev/relic/internal/persist"
)

// Args represents the top-level command structure
type Args struct {
	ConfigPath *string `arg:"--config" help:"Path to the config file"`
	Dir        *string `arg:"--dir" help:"Store history in this directory, overriding configured scopes"`

	Log       *LogCmd       `arg:"subcommand:log" help:"Print a category's stored history"`
	Push      *PushCmd      `arg:"subcommand:push" help:"Append entries to a category"`
	Trim      *TrimCmd      `arg:"subcommand:trim" help:"Enforce the entry cap on one or all categories"`
	Clipboard *ClipboardCmd `arg:"subcommand:clipboard" help:"Sync persisted registers with the system clipboard"`
	Config    *ConfigCmd    `arg:"subcommand:config" help:"Inspect or edit configuration"`
	Browse    *BrowseCmd    `arg:"subcommand:browse" help:"Browse a category interactively"`
}

// LogCmd represents the 'relic log' command
type LogCmd struct {
	Category string `arg:"positional,required" help:"commands, search, files, clipboard, or splits"`
}

// PushCmd represents the 'relic push' command
type PushCmd struct {
	Category string  `arg:"positional,required" help:"commands, search, files, or clipboard"`
	Line     *string `arg:"positional" help:"Entry text (lines are read from stdin when omitted)"`

	Path       *string `arg:"--path" help:"File path (files category)"`
	Anchor     int     `arg:"--anchor" help:"Viewport anchor position (files category)"`
	Vertical   int     `arg:"--vertical" help:"Vertical viewport offset (files category)"`
	Horizontal int     `arg:"--horizontal" help:"Horizontal viewport offset (files category)"`
}

// TrimCmd represents the 'relic trim' command
type TrimCmd struct {
	Category *string `arg:"positional" help:"Category to trim (all enabled categories when omitted)"`
}

// ClipboardCmd represents the 'relic clipboard' command
type ClipboardCmd struct {
	Save *ClipboardSaveCmd `arg:"subcommand:save" help:"Persist the system clipboard into the register file"`
	Load *ClipboardLoadCmd `arg:"subcommand:load" help:"Copy the persisted registers to the system clipboard"`
}

// ClipboardSaveCmd represents 'relic clipboard save'
type ClipboardSaveCmd struct{}

// ClipboardLoadCmd represents 'relic clipboard load'
type ClipboardLoadCmd struct{}

// ConfigCmd represents the 'relic config' command
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Print one configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Change one configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"Print all configuration values"`
}

// ConfigGetCmd represents 'relic config get'
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Dotted key, e.g. search.max_entries"`
}

// ConfigSetCmd represents 'relic config set'
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Dotted key, e.g. search.max_entries"`
	Value string `arg:"positional,required" help:"New value"`
}

// ConfigListCmd represents 'relic config list'
type ConfigListCmd struct{}

// BrowseCmd represents the 'relic browse' command
type BrowseCmd struct {
	Category *string `arg:"positional" help:"Category to browse (defaults to commands)"`
}

// Description returns the program description
func (Args) Description() string {
	return "relic - persistent editor state: command, search, file, clipboard, and split-layout history"
}

// Version returns the program version
func (Args) Version() string {
	return "relic 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  # Append and recall command history
  relic push commands ":write-quit"
  relic log commands

  # Search history from a script
  printf '%s\n' TODO FIXME | relic push search
  relic trim search

  # Registers and the system clipboard
  relic clipboard save
  relic clipboard load

  # Interactive browsing
  relic browse search

History files live in the configured scope directory (global state dir,
per-workspace, or an explicit path); --dir overrides the scope for one
invocation.`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.Log != nil {
		if _, err := persist.ParseCategory(args.Log.Category); err != nil {
			return err
		}
	}
	if args.Push != nil {
		return args.Push.Validate()
	}
	if args.Trim != nil && args.Trim.Category != nil {
		if _, err := persist.ParseCategory(*args.Trim.Category); err != nil {
			return err
		}
	}
	if args.Browse != nil && args.Browse.Category != nil {
		if _, err := persist.ParseCategory(*args.Browse.Category); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates push command arguments
func (p *PushCmd) Validate() error {
	cat, err := persist.ParseCategory(p.Category)
	if err != nil {
		return err
	}
	switch cat {
	case persist.CategoryFiles:
		if p.Path == nil {
			return fmt.Errorf("pushing a file entry requires --path")
		}
		if p.Line != nil {
			return fmt.Errorf("file entries take --path, not positional text")
		}
	case persist.CategorySplits:
		return fmt.Errorf("split layouts cannot be pushed from the command line")
	default:
		if p.Path != nil {
			return fmt.Errorf("--path only applies to the files category")
		}
	}
	return nil
}
