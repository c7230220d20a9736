package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsPrefabEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := filepath.Join(dir, "guard.yaml")
	if err := os.WriteFile(want, []byte("name: guard\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != want {
			t.Fatalf("event for %q, want %q", got, want)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", want)
	}
}

func TestWatcherFileKinds(t *testing.T) {
	cases := []struct {
		path         string
		spec, script bool
	}{
		{"prefabs/guard.yaml", true, false},
		{"prefabs/guard.YML", true, false},
		{"prefabs/scripts/guard.tengo", false, true},
		{"prefabs/readme.md", false, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			if IsSpecFile(c.path) != c.spec || IsScriptFile(c.path) != c.script {
				t.Fatalf("kinds for %s = (%v, %v)", c.path, IsSpecFile(c.path), IsScriptFile(c.path))
			}
		})
	}
}
