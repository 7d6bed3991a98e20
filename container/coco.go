// Package container implements the three Color Computer file-container
// formats the assembler's CLI front ends can wrap an assembled program
// in: raw binary, cassette (.CAS), and disk (.DSK).
package container

import "fmt"

// FileType is the CoCo file-type byte stored in cassette and disk
// directory entries.
type FileType byte

const (
	FileTypeBasic FileType = 0
	FileTypeData  FileType = 1
	FileTypeObject FileType = 2
)

// DataType is the CoCo data-type byte.
type DataType byte

const (
	DataTypeBinary DataType = 0
	DataTypeASCII  DataType = 0xFF
)

// File is a single logical file inside a container: a name, its CoCo
// type metadata, and its payload bytes, plus the load/exec addresses a
// machine-code (OBJECT) file carries.
type File struct {
	Name      string
	Ext       string
	Type      FileType
	DataType  DataType
	LoadAddr  int
	ExecAddr  int
	Gaps      bool
	Data      []byte
	IgnoreGaps bool
}

func (f File) String() string {
	return fmt.Sprintf(
		"Filename       %-8s\nFile type      %d\nData type      %d\nLoad address   $%04X\nExec address   $%04X\nLength         %d bytes",
		f.Name, f.Type, f.DataType, f.LoadAddr, f.ExecAddr, len(f.Data),
	)
}

// Writer is the narrow interface the assembler CLI front end uses to
// wrap an assembled program in a container format.
type Writer interface {
	// Write adds f to the container at path, creating the file if it is
	// absent. With appendExisting false, an existing file at path is an
	// error.
	Write(path string, f File, appendExisting bool) error
}

// Reader is the narrow interface the file utility CLI uses to inspect an
// existing container.
type Reader interface {
	// IsCorrectType reports whether data is recognizably this reader's
	// format.
	IsCorrectType(data []byte) bool
	// ListFiles returns every file stored in data.
	ListFiles(data []byte) ([]File, error)
}

// Detect probes data against every known reader (disk, then cassette) and
// returns the one that claims it, or nil if none does.
func Detect(data []byte) Reader {
	disk := &DiskReader{}
	if disk.IsCorrectType(data) {
		return disk
	}
	cas := &CassetteReader{}
	if cas.IsCorrectType(data) {
		return cas
	}
	return nil
}
