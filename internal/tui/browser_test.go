package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m BrowserModel, keys ...string) BrowserModel {
	t.Helper()
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.(BrowserModel).Update(key(k))
	}
	return model.(BrowserModel)
}

func TestNavigation(t *testing.T) {
	m := NewBrowserModel("commands", []string{"wq", "q", "w", "open"})

	m = update(t, m, "j", "j")
	if m.Cursor != 2 {
		t.Errorf("cursor after jj: got %d, want 2", m.Cursor)
	}

	m = update(t, m, "k")
	if m.Cursor != 1 {
		t.Errorf("cursor after k: got %d, want 1", m.Cursor)
	}

	m = update(t, m, "G")
	if m.Cursor != 3 {
		t.Errorf("cursor after G: got %d, want 3", m.Cursor)
	}

	m = update(t, m, "g")
	if m.Cursor != 0 {
		t.Errorf("cursor after g: got %d, want 0", m.Cursor)
	}

	// Moving past the ends is clamped.
	m = update(t, m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor clamped at top: got %d", m.Cursor)
	}
}

func TestSearchFilters(t *testing.T) {
	m := NewBrowserModel("commands", []string{"write", "quit", "write-quit"})

	m = update(t, m, "/", "w", "r", "enter")
	if m.Mode != NormalMode {
		t.Fatal("expected normal mode after enter")
	}
	if m.Filter != "wr" {
		t.Fatalf("filter: got %q, want %q", m.Filter, "wr")
	}

	visible := m.visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(visible))
	}
	if m.Entries[visible[0]] != "write" || m.Entries[visible[1]] != "write-quit" {
		t.Errorf("unexpected matches: %v", visible)
	}
}

func TestSearchEscCancels(t *testing.T) {
	m := NewBrowserModel("commands", []string{"a", "b"})

	m = update(t, m, "/", "x", "esc")
	if m.Mode != NormalMode {
		t.Fatal("expected normal mode after esc")
	}
	if m.Filter != "" {
		t.Errorf("expected no filter, got %q", m.Filter)
	}
	if len(m.visible()) != 2 {
		t.Error("expected all entries visible after cancel")
	}
}

func TestSearchBackspace(t *testing.T) {
	m := NewBrowserModel("commands", []string{"a"})

	m = update(t, m, "/", "a", "b", "backspace")
	if m.SearchInput != "a" {
		t.Errorf("search input: got %q, want %q", m.SearchInput, "a")
	}
}

func TestViewShowsSelection(t *testing.T) {
	m := NewBrowserModel("search", []string{"alpha", "beta"})
	m.Width = 40
	m.Height = 10

	view := m.View()
	if !strings.Contains(view, "search") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "alpha") || !strings.Contains(view, "beta") {
		t.Error("expected entries in view")
	}
	if !strings.Contains(view, "1/2") {
		t.Error("expected position indicator in view")
	}
}

func TestViewEmpty(t *testing.T) {
	m := NewBrowserModel("files", nil)
	if !strings.Contains(m.View(), "empty") {
		t.Error("expected empty indicator")
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewBrowserModel("commands", []string{"a"})
	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Errorf("key %q: expected quit command", k)
		}
	}
}
