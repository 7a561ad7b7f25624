package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// Mirrors the editor's lifecycle across restarts: each "session" builds a
// fresh store over the same scope directory, records activity, and trims on
// the next startup.
func TestMultiSessionLifecycle(t *testing.T) {
	dir := t.TempDir()
	newSession := func() *Store {
		cfg := Config{All: Options{Enabled: true, MaxEntries: 3, Scope: DirScope(dir)}}
		return NewStore(cfg, Resolver{StateDir: dir})
	}

	// Session 1: edit a file, save, quit.
	s1 := newSession()
	if err := s1.PushRegisterHistory(':', "wq"); err != nil {
		t.Fatalf("session 1 push failed: %v", err)
	}
	if err := s1.PushFileHistory(FileHistoryEntry{
		Path:         "/work/file.txt",
		ViewPosition: ViewPosition{Anchor: 2},
		Selection:    Selection{Ranges: []Range{{Anchor: 2, Head: 3}}},
	}); err != nil {
		t.Fatalf("session 1 file push failed: %v", err)
	}

	// Session 2: the previous command is the first recalled entry, the file
	// position is restored, a yank and a search happen.
	s2 := newSession()
	commands, err := s2.ReadCommandHistory()
	if err != nil {
		t.Fatalf("session 2 command read failed: %v", err)
	}
	if len(commands) == 0 || commands[0] != "wq" {
		t.Fatalf("expected wq recalled first, got %v", commands)
	}
	files, err := s2.ReadFileHistory()
	if err != nil {
		t.Fatalf("session 2 file read failed: %v", err)
	}
	if len(files) != 1 || files[0].ViewPosition.Anchor != 2 {
		t.Fatalf("file position not restored: %+v", files)
	}
	if err := s2.WriteClipboard([]string{"b\n"}); err != nil {
		t.Fatalf("session 2 clipboard write failed: %v", err)
	}
	if err := s2.PushRegisterHistory('/', "a"); err != nil {
		t.Fatalf("session 2 search push failed: %v", err)
	}

	// Session 3: paste from the persisted clipboard, then search four times,
	// exceeding the cap of 3.
	s3 := newSession()
	clip, err := s3.ReadClipboard()
	if err != nil {
		t.Fatalf("session 3 clipboard read failed: %v", err)
	}
	if want := []string{"b\n"}; !reflect.DeepEqual(clip, want) {
		t.Fatalf("clipboard: got %v, want %v", clip, want)
	}
	for _, q := range []string{"1", "2", "3"} {
		if err := s3.PushRegisterHistory('/', q); err != nil {
			t.Fatalf("session 3 search push failed: %v", err)
		}
	}

	// Session 4 startup trims; the oldest search ("a") is dropped.
	s4 := newSession()
	if err := s4.TrimSearchHistory(); err != nil {
		t.Fatalf("session 4 trim failed: %v", err)
	}

	stored, err := s4.readLines(CategorySearch)
	if err != nil {
		t.Fatalf("session 4 read failed: %v", err)
	}
	if want := []string{"1", "2", "3"}; !reflect.DeepEqual(stored, want) {
		t.Errorf("stored search history: got %v, want %v", stored, want)
	}

	// The on-disk bytes are the exact concatenation of the three records.
	raw, err := os.ReadFile(filepath.Join(dir, "search_history"))
	if err != nil {
		t.Fatalf("reading search history file failed: %v", err)
	}
	want := "\x01\x00\x00\x00\x00\x00\x00\x001" +
		"\x01\x00\x00\x00\x00\x00\x00\x002" +
		"\x01\x00\x00\x00\x00\x00\x00\x003"
	if string(raw) != want {
		t.Errorf("raw file bytes: got %q, want %q", raw, want)
	}
}
