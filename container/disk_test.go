package container

import "testing"

func TestDiskWriteThenListRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.dsk"

	f := File{
		Name:     "PROG",
		Ext:      "BIN",
		Type:     FileTypeObject,
		DataType: DataTypeBinary,
		LoadAddr: 0x0600,
		ExecAddr: 0x0600,
		Data:     []byte{0x86, 0x00, 0x39},
	}

	w := DiskWriter{}
	if err := w.Write(path, f, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data := readFileBytes(t, path)
	if len(data) != diskTotalBytes {
		t.Fatalf("image size = %d, want %d", len(data), diskTotalBytes)
	}

	r := DiskReader{}
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
	if got.Name != "PROG" {
		t.Errorf("Name = %q, want PROG", got.Name)
	}
	if got.LoadAddr != 0x0600 || got.ExecAddr != 0x0600 {
		t.Errorf("LoadAddr=%#x ExecAddr=%#x, want 0x0600 both", got.LoadAddr, got.ExecAddr)
	}
	if string(got.Data) != string(f.Data) {
		t.Errorf("Data = % X, want % X", got.Data, f.Data)
	}
}

func TestDiskWriteRejectsExistingFileWithoutAppend(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.dsk"

	f := File{Name: "A", Type: FileTypeObject, Data: []byte{0x12}}
	w := DiskWriter{}
	if err := w.Write(path, f, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(path, f, false); err == nil {
		t.Error("expected error writing over an existing disk image without append")
	}
}

func TestSeekGranuleSkipsReservedDirectoryGranules(t *testing.T) {
	if seekGranule(33) != 33*diskGranuleSize {
		t.Errorf("seekGranule(33) = %d, want %d", seekGranule(33), 33*diskGranuleSize)
	}
	if seekGranule(34) != 36*diskGranuleSize {
		t.Errorf("seekGranule(34) = %d, want %d (skipping 2 reserved granules)", seekGranule(34), 36*diskGranuleSize)
	}
}
