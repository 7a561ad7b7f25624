package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relicdev/relic/internal/clipboard/mockboard"
	"github.com/relicdev/relic/internal/config"
	"github.com/relicdev/relic/internal/persist"
)

// newTestCLI builds a CLI over a temp scope directory with a mock
// clipboard and captured stdout.
func newTestCLI(t *testing.T) (*CLI, *mockboard.MockClipboard, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := persist.Config{
		All: persist.Options{Enabled: true, MaxEntries: 3, Scope: persist.DirScope(dir)},
	}
	clip := mockboard.New()
	out := &bytes.Buffer{}

	c := &CLI{
		store:     persist.NewStore(cfg, persist.Resolver{StateDir: dir}),
		manager:   config.NewManagerWithPath(filepath.Join(dir, "config.yaml")),
		clipboard: clip,
		stdout:    out,
	}
	return c, clip, out
}

func TestNewWithArgsUsesConfigAndDirOverrides(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	histDir := filepath.Join(dir, "hist")

	args := &Args{ConfigPath: &configPath, Dir: &histDir}
	c, err := NewWithArgs(args)
	if err != nil {
		t.Fatalf("NewWithArgs failed: %v", err)
	}

	if c.manager.ConfigPath() != configPath {
		t.Errorf("config path: got %q, want %q", c.manager.ConfigPath(), configPath)
	}

	path, err := c.store.FilePath(persist.CategoryCommands)
	if err != nil {
		t.Fatalf("FilePath failed: %v", err)
	}
	if path != filepath.Join(histDir, "command_history") {
		t.Errorf("history path not forced to --dir: %q", path)
	}
}

func TestPushAndLogCommands(t *testing.T) {
	c, _, out := newTestCLI(t)

	for _, line := range []string{":w", ":q"} {
		entry := line
		if err := c.Execute(&Args{Push: &PushCmd{Category: "commands", Line: &entry}}); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}

	if err := c.Execute(&Args{Log: &LogCmd{Category: "commands"}}); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	// Newest first.
	want := ":q\n:w\n"
	if out.String() != want {
		t.Errorf("log output: got %q, want %q", out.String(), want)
	}
}

func TestTrimAllCategories(t *testing.T) {
	c, _, _ := newTestCLI(t)

	for _, line := range []string{"a", "1", "2", "3"} {
		entry := line
		if err := c.Execute(&Args{Push: &PushCmd{Category: "search", Line: &entry}}); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}

	if err := c.Execute(&Args{Trim: &TrimCmd{}}); err != nil {
		t.Fatalf("trim failed: %v", err)
	}

	got, err := c.store.ReadSearchHistory()
	if err != nil {
		t.Fatalf("ReadSearchHistory failed: %v", err)
	}
	if len(got) != 3 || got[0] != "3" {
		t.Errorf("expected trimmed history [3 2 1], got %v", got)
	}
}

func TestPushFileEntry(t *testing.T) {
	c, _, _ := newTestCLI(t)

	path := "/work/main.go"
	cmd := &PushCmd{Category: "files", Path: &path, Anchor: 42}
	if err := c.Execute(&Args{Push: cmd}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	entries, err := c.store.ReadFileHistory()
	if err != nil {
		t.Fatalf("ReadFileHistory failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != path || entries[0].ViewPosition.Anchor != 42 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestPushDisabledCategoryIsSkipped(t *testing.T) {
	c, _, _ := newTestCLI(t)
	c.store.Config().All.Enabled = false

	entry := "ignored"
	if err := c.Execute(&Args{Push: &PushCmd{Category: "commands", Line: &entry}}); err != nil {
		t.Fatalf("push returned error: %v", err)
	}

	got, err := c.store.ReadCommandHistory()
	if err != nil {
		t.Fatalf("ReadCommandHistory failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected nothing recorded, got %v", got)
	}
}

func TestClipboardSaveAndLoad(t *testing.T) {
	c, clip, out := newTestCLI(t)
	clip.SetData([]byte("yanked text"))

	if err := c.Execute(&Args{Clipboard: &ClipboardCmd{Save: &ClipboardSaveCmd{}}}); err != nil {
		t.Fatalf("clipboard save failed: %v", err)
	}

	values, err := c.store.ReadClipboard()
	if err != nil {
		t.Fatalf("ReadClipboard failed: %v", err)
	}
	if len(values) != 1 || values[0] != "yanked text" {
		t.Fatalf("unexpected register values: %v", values)
	}

	clip.SetData(nil)
	out.Reset()
	if err := c.Execute(&Args{Clipboard: &ClipboardCmd{Load: &ClipboardLoadCmd{}}}); err != nil {
		t.Fatalf("clipboard load failed: %v", err)
	}
	if string(clip.Data()) != "yanked text" {
		t.Errorf("clipboard content: got %q", clip.Data())
	}
}

func TestConfigSetAndGet(t *testing.T) {
	c, _, out := newTestCLI(t)

	if err := c.Execute(&Args{Config: &ConfigCmd{Set: &ConfigSetCmd{Key: "search.max_entries", Value: "7"}}}); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	out.Reset()
	if err := c.Execute(&Args{Config: &ConfigCmd{Get: &ConfigGetCmd{Key: "search.max_entries"}}}); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "7" {
		t.Errorf("config get output: got %q, want 7", out.String())
	}
}

func TestValidateRejectsBadArgs(t *testing.T) {
	cases := []*Args{
		{Log: &LogCmd{Category: "bookmarks"}},
		{Push: &PushCmd{Category: "files"}},                      // missing --path
		{Push: &PushCmd{Category: "splits"}},                     // not pushable
		{Push: &PushCmd{Category: "commands", Path: new(string)}}, // --path misuse
	}

	for i, args := range cases {
		if err := args.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
