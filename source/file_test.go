package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLinesDropsTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	if err := os.WriteFile(path, []byte("ORG $0600\r\nNOP\r\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r := NewFileReader(dir)
	lines, err := r.ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	want := []string{"ORG $0600", "NOP"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLinesFallsBackToSearchDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "macros.inc"), []byte("ENDM\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r := NewFileReader(dir)
	lines, err := r.ReadLines("macros.inc")
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != 1 || lines[0] != "ENDM" {
		t.Errorf("lines = %v, want [ENDM]", lines)
	}
}

func TestReadLinesMissingFileFails(t *testing.T) {
	r := NewFileReader(t.TempDir())
	if _, err := r.ReadLines("does-not-exist.asm"); err == nil {
		t.Error("expected error for missing file")
	}
}
