package container

import (
	"os"
	"testing"
)

func TestCassetteWriteThenListRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.cas"

	f := File{
		Name:     "PROG",
		Type:     FileTypeObject,
		DataType: DataTypeBinary,
		LoadAddr: 0x0600,
		ExecAddr: 0x0600,
		Data:     []byte{0x86, 0x00, 0x39},
	}

	w := CassetteWriter{}
	if err := w.Write(path, f, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if err := w.Write(path, f, false); err == nil {
		t.Error("expected error writing over an existing file without append")
	}

	data := readFileBytes(t, path)
	r := CassetteReader{}
	if !r.IsCorrectType(data) {
		t.Fatal("IsCorrectType = false, want true")
	}

	files, err := r.ListFiles(data)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	got := files[0]
	if got.LoadAddr != 0x0600 || got.ExecAddr != 0x0600 {
		t.Errorf("LoadAddr=%#x ExecAddr=%#x, want 0x0600 both", got.LoadAddr, got.ExecAddr)
	}
	if string(got.Data) != string(f.Data) {
		t.Errorf("Data = % X, want % X", got.Data, f.Data)
	}
}

// The header block body is a fixed 15 bytes (8-char name, type, datatype,
// gap, 2-byte load address, 2-byte exec address); the length byte and the
// overall 21-byte block length must reflect that exactly.
func TestCassetteHeaderIsFixed21Bytes(t *testing.T) {
	f := File{
		Name:     "PROG",
		Type:     FileTypeObject,
		DataType: DataTypeBinary,
		LoadAddr: 0x0600,
		ExecAddr: 0x0601,
	}
	block := header(f)
	if len(block) != 21 {
		t.Fatalf("header block length = %d, want 21", len(block))
	}
	if block[3] != 0x0F {
		t.Errorf("header length byte = %#X, want 0x0F", block[3])
	}
}

func TestCassetteDataBlockSplitsOverMaxSize(t *testing.T) {
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	blocks := dataBlocks(payload)

	// Two data blocks: 255 bytes then 45, each with a 4-byte header and
	// a 2-byte trailer (checksum + leader byte).
	want := (4 + 255 + 2) + (4 + 45 + 2)
	if len(blocks) != want {
		t.Errorf("len(blocks) = %d, want %d", len(blocks), want)
	}
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
