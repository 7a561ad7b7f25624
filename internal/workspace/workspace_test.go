package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindLocatesMarkerInAncestor(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".git"), 0o755); err != nil {
		t.Fatalf("creating marker failed: %v", err)
	}
	nested := filepath.Join(tempDir, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("creating nested dir failed: %v", err)
	}

	root, found := Find(nested)
	if !found {
		t.Fatal("expected marker to be found")
	}
	if root != tempDir {
		t.Errorf("got %q, want %q", root, tempDir)
	}
}

func TestFindFallsBackToStartDir(t *testing.T) {
	tempDir := t.TempDir()

	root, found := Find(tempDir)
	if found {
		t.Skip("an ancestor of TempDir carries a workspace marker")
	}
	if root != tempDir {
		t.Errorf("got %q, want the start dir %q", root, tempDir)
	}
}

func TestFindPrefersNearestMarker(t *testing.T) {
	tempDir := t.TempDir()
	outer := filepath.Join(tempDir, "outer")
	inner := filepath.Join(outer, "inner")
	for _, dir := range []string{outer, inner} {
		if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatalf("creating marker failed: %v", err)
		}
	}

	deep := filepath.Join(inner, "deep")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("creating nested dir failed: %v", err)
	}

	root, found := Find(deep)
	if !found || root != inner {
		t.Errorf("got %q (found=%v), want the nearest root %q", root, found, inner)
	}
}
