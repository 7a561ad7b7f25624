// Package cli wires configuration, the persistence store, and the system
// clipboard into the relic command-line interface.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/relicdev/relic/internal/clipboard"
	"github.com/relicdev/relic/internal/clipboard/sysboard"
	"github.com/relicdev/relic/internal/config"
	"github.com/relicdev/relic/internal/persist"
	"github.com/relicdev/relic/internal/tui"
	"github.com/relicdev/relic/internal/workspace"
)

// CLI handles the command-line interface
type CLI struct {
	store     *persist.Store
	manager   *config.Manager
	clipboard clipboard.Clipboard
	stdout    io.Writer
}

// New creates a new CLI instance
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a CLI instance honoring the --config and --dir
// overrides.
func NewWithArgs(args *Args) (*CLI, error) {
	var manager *config.Manager
	if args != nil && args.ConfigPath != nil {
		manager = config.NewManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		manager, err = config.NewManager()
		if err != nil {
			return nil, err
		}
	}

	settings, err := manager.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg, err := settings.ToPersist()
	if err != nil {
		return nil, fmt.Errorf("invalid persistence config: %w", err)
	}
	if args != nil && args.Dir != nil {
		cfg.ForceDir(*args.Dir)
	}

	stateDir, err := settings.StateDirPath()
	if err != nil {
		return nil, err
	}

	store := persist.NewStore(cfg, persist.Resolver{
		StateDir:  stateDir,
		Workspace: workspace.FindFromWd,
	})

	return &CLI{
		store:     store,
		manager:   manager,
		clipboard: sysboard.New(),
		stdout:    os.Stdout,
	}, nil
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Log != nil:
		return c.executeLog(args.Log)
	case args.Push != nil:
		return c.executePush(args.Push)
	case args.Trim != nil:
		return c.executeTrim(args.Trim)
	case args.Clipboard != nil:
		return c.executeClipboard(args.Clipboard)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	case args.Browse != nil:
		return c.executeBrowse(args.Browse)
	default:
		return c.executeBrowse(&BrowseCmd{})
	}
}

// executeLog handles the 'relic log' command
func (c *CLI) executeLog(cmd *LogCmd) error {
	cat, err := persist.ParseCategory(cmd.Category)
	if err != nil {
		return err
	}

	switch cat {
	case persist.CategoryFiles:
		entries, err := c.store.ReadFileHistory()
		if err != nil {
			return fmt.Errorf("failed to read file history: %w", err)
		}
		for _, e := range entries {
			fmt.Fprintf(c.stdout, "%s\t%d\n", e.Path, e.ViewPosition.Anchor)
		}
		return nil
	case persist.CategorySplits:
		entries, err := c.store.ReadSplits()
		if err != nil {
			return fmt.Errorf("failed to read split layouts: %w", err)
		}
		for _, e := range entries {
			fmt.Fprintf(c.stdout, "%s\t%d panes\n", e.Name, countPanes(e.Tree))
		}
		return nil
	default:
		lines, err := c.readCategoryLines(cat)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(c.stdout, line)
		}
		return nil
	}
}

// executePush handles the 'relic push' command
func (c *CLI) executePush(cmd *PushCmd) error {
	cat, err := persist.ParseCategory(cmd.Category)
	if err != nil {
		return err
	}
	if !c.store.Config().Enabled(cat) {
		slog.Debug("persistence disabled, skipping push", "category", cat.String())
		return nil
	}

	switch cat {
	case persist.CategoryFiles:
		return c.store.PushFileHistory(persist.FileHistoryEntry{
			Path: *cmd.Path,
			ViewPosition: persist.ViewPosition{
				Anchor:           cmd.Anchor,
				HorizontalOffset: cmd.Horizontal,
				VerticalOffset:   cmd.Vertical,
			},
		})
	case persist.CategoryClipboard:
		values, err := c.inputLines(cmd.Line)
		if err != nil {
			return err
		}
		return c.store.WriteClipboard(values)
	default:
		register := ':'
		if cat == persist.CategorySearch {
			register = '/'
		}
		lines, err := c.inputLines(cmd.Line)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := c.store.PushRegisterHistory(register, line); err != nil {
				return fmt.Errorf("failed to push %q: %w", line, err)
			}
		}
		return nil
	}
}

// executeTrim handles the 'relic trim' command
func (c *CLI) executeTrim(cmd *TrimCmd) error {
	if cmd.Category != nil {
		cat, err := persist.ParseCategory(*cmd.Category)
		if err != nil {
			return err
		}
		return c.store.Trim(cat)
	}

	for _, cat := range persist.Categories() {
		if !c.store.Config().Enabled(cat) {
			continue
		}
		if err := c.store.Trim(cat); err != nil {
			return fmt.Errorf("failed to trim %s: %w", cat, err)
		}
	}
	return nil
}

// executeClipboard handles the 'relic clipboard' command
func (c *CLI) executeClipboard(cmd *ClipboardCmd) error {
	switch {
	case cmd.Save != nil:
		return c.executeClipboardSave()
	case cmd.Load != nil:
		return c.executeClipboardLoad()
	default:
		return fmt.Errorf("no clipboard subcommand specified")
	}
}

func (c *CLI) executeClipboardSave() error {
	reader, err := c.clipboard.Read()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read clipboard content: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("clipboard is empty")
	}

	if err := c.store.WriteClipboard([]string{string(data)}); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Saved %d bytes to the register file\n", len(data))
	return nil
}

func (c *CLI) executeClipboardLoad() error {
	values, err := c.store.ReadClipboard()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no persisted registers")
	}

	content := strings.Join(values, "\n")
	if err := c.clipboard.Write(strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	fmt.Fprintf(c.stdout, "Copied %d bytes to clipboard\n", len(content))
	return nil
}

// executeConfig handles the 'relic config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.manager.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Fprintln(c.stdout, value)
		return nil
	case cmd.Set != nil:
		if err := c.manager.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		fmt.Fprintf(c.stdout, "Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil
	case cmd.List != nil:
		values, err := c.manager.List()
		if err != nil {
			return fmt.Errorf("failed to list config values: %w", err)
		}
		fmt.Fprintln(c.stdout, "Current configuration:")
		for key, value := range values {
			fmt.Fprintf(c.stdout, "  %s = %s\n", key, value)
		}
		return nil
	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeBrowse handles the 'relic browse' command
func (c *CLI) executeBrowse(cmd *BrowseCmd) error {
	cat := persist.CategoryCommands
	if cmd.Category != nil {
		var err error
		cat, err = persist.ParseCategory(*cmd.Category)
		if err != nil {
			return err
		}
	}

	entries, err := c.browseEntries(cat)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(c.stdout, "No %s history yet.\n", cat)
		fmt.Fprintln(c.stdout)
		fmt.Fprintf(c.stdout, "  relic push %s \"...\"\n", cat)
		return nil
	}

	return tui.Run(cat.String()+" history", entries)
}

// browseEntries flattens a category into display strings: recall order for
// command and search history, stored order for the rest.
func (c *CLI) browseEntries(cat persist.Category) ([]string, error) {
	switch cat {
	case persist.CategoryFiles:
		entries, err := c.store.ReadFileHistory()
		if err != nil {
			return nil, err
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.Path
		}
		return lines, nil
	case persist.CategorySplits:
		entries, err := c.store.ReadSplits()
		if err != nil {
			return nil, err
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = fmt.Sprintf("%s (%d panes)", e.Name, countPanes(e.Tree))
		}
		return lines, nil
	default:
		return c.readCategoryLines(cat)
	}
}

func (c *CLI) readCategoryLines(cat persist.Category) ([]string, error) {
	switch cat {
	case persist.CategoryCommands:
		return c.store.ReadCommandHistory()
	case persist.CategorySearch:
		return c.store.ReadSearchHistory()
	case persist.CategoryClipboard:
		return c.store.ReadClipboard()
	default:
		return nil, fmt.Errorf("category %s has no line representation", cat)
	}
}

// inputLines returns the argument as a single line, or all lines read from
// stdin when no argument was given.
func (c *CLI) inputLines(arg *string) ([]string, error) {
	if arg != nil {
		return []string{*arg}, nil
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no input provided")
	}
	return lines, nil
}

func countPanes(tree persist.SplitTree) int {
	switch n := tree.(type) {
	case *persist.SplitNode:
		total := 0
		for _, child := range n.Children {
			total += countPanes(child)
		}
		return total
	default:
		return 1
	}
}
