// Package source reads assembly source files from disk for the
// assembler core, which only depends on the asm.SourceReader interface.
package source

import (
	"fmt"
	"os"
	"strings"
)

// FileReader reads assembly source text from the local filesystem. It is
// the concrete implementation of asm.SourceReader used by the CLI
// front-ends.
type FileReader struct {
	// Dirs is searched in order when a filename cannot be opened
	// directly; it lets INCLUDE resolve relative to the original
	// source file's directory in addition to the working directory.
	Dirs []string
}

// NewFileReader builds a FileReader that also searches dir (typically the
// directory containing the top-level source file) for INCLUDE targets.
func NewFileReader(dir string) *FileReader {
	return &FileReader{Dirs: []string{dir}}
}

// ReadLines reads filename and splits it into lines, dropping the
// trailing newline from each. Tries filename as given, then joined with
// each configured search directory.
func (r *FileReader) ReadLines(filename string) ([]string, error) {
	contents, err := r.readFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read [%s]: %w", filename, err)
	}
	text := strings.ReplaceAll(string(contents), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func (r *FileReader) readFile(filename string) ([]byte, error) {
	if contents, err := os.ReadFile(filename); err == nil {
		return contents, nil
	}
	var lastErr error
	for _, dir := range r.Dirs {
		if dir == "" {
			continue
		}
		contents, err := os.ReadFile(dir + string(os.PathSeparator) + filename)
		if err == nil {
			return contents, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("file not found")
}
