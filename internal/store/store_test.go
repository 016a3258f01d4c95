package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewWithFs(afero.NewMemMapFs(), "root")
}

func TestReadTextMissingFile(t *testing.T) {
	s := newTestStore(t)

	text, err := s.ReadText("nope/missing.txt")
	if err != nil {
		t.Fatalf("ReadText on missing file: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty string, got %q", text)
	}
}

func TestWriteTextCreatesDirectories(t *testing.T) {
	s := newTestStore(t)

	if err := s.WriteText("a/b/c.txt", "hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	text, err := s.ReadText("a/b/c.txt")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "hello" {
		t.Errorf("round-trip mismatch: %q", text)
	}
}

func TestWriteJSONMerges(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.WriteJSON("meta.json", map[string]any{"id": float64(42), "name": "old"}); err != nil {
		t.Fatalf("first WriteJSON: %v", err)
	}
	if _, err := s.WriteJSON("meta.json", map[string]any{"name": "new"}); err != nil {
		t.Fatalf("second WriteJSON: %v", err)
	}

	data, err := s.ReadJSON("meta.json")
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if data["id"] != float64(42) {
		t.Errorf("merge clobbered unrelated key: %v", data["id"])
	}
	if data["name"] != "new" {
		t.Errorf("merge missed updated key: %v", data["name"])
	}
}

func TestReadJSONMissingIsEmpty(t *testing.T) {
	s := newTestStore(t)

	data, err := s.ReadJSON("absent.json")
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty map, got %v", data)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	s := newTestStore(t)

	if err := s.WriteText("bad.json", "{not json"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	_, err := s.ReadJSON("bad.json")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestListDirsExcludesHidden(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"top/visible/x.txt", "top/.hidden/x.txt"} {
		if err := s.WriteText(p, "x"); err != nil {
			t.Fatalf("WriteText %s: %v", p, err)
		}
	}
	if err := s.WriteText("top/file.txt", "x"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	dirs, err := s.ListDirs("top")
	if err != nil {
		t.Fatalf("ListDirs: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != "visible" {
		t.Errorf("ListDirs = %v, want [visible]", dirs)
	}

	files, err := s.ListFiles("top")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "file.txt" {
		t.Errorf("ListFiles = %v, want [file.txt]", files)
	}
}

func TestListDirsMissingPath(t *testing.T) {
	s := newTestStore(t)

	dirs, err := s.ListDirs("never/created")
	if err != nil {
		t.Fatalf("ListDirs: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("expected no dirs, got %v", dirs)
	}
}

func TestMoveMissingSourceIsNoop(t *testing.T) {
	s := newTestStore(t)

	if err := s.Move("ghost.txt", "elsewhere.txt"); err != nil {
		t.Errorf("Move of missing source should be a no-op, got %v", err)
	}
}

func TestMoveFile(t *testing.T) {
	s := newTestStore(t)

	if err := s.WriteText("a/old.txt", "payload"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if err := s.Move("a/old.txt", "b/new.txt"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if s.Exists("a/old.txt") {
		t.Error("source still exists after move")
	}
	text, err := s.ReadText("b/new.txt")
	if err != nil || text != "payload" {
		t.Errorf("destination content = %q, %v", text, err)
	}
}

func TestDeleteFileMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	if err := s.DeleteFile("ghost.txt"); err != nil {
		t.Errorf("DeleteFile of missing file should be a no-op, got %v", err)
	}
}

func TestDeleteTree(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"tree/a.txt", "tree/sub/b.txt"} {
		if err := s.WriteText(p, "x"); err != nil {
			t.Fatalf("WriteText %s: %v", p, err)
		}
	}
	if err := s.DeleteTree("tree"); err != nil {
		t.Fatalf("DeleteTree: %v", err)
	}
	if s.Exists("tree") {
		t.Error("tree still exists after DeleteTree")
	}
}
