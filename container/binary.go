package container

import (
	"fmt"
	"os"
)

// BinaryWriter writes a File's payload as a raw, header-less byte stream.
type BinaryWriter struct{}

func (BinaryWriter) Write(path string, f File, appendExisting bool) error {
	if !appendExisting {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file [%s] already exists", path)
		}
	}
	flags := os.O_WRONLY | os.O_CREATE
	if appendExisting {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	fh, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	defer fh.Close()
	_, err = fh.Write(f.Data)
	return err
}

// WriteBinaryFile is a convenience wrapper used by the CLI to save an
// extracted container entry as a standalone `.bin` file.
func WriteBinaryFile(path string, data []byte, appendExisting bool) error {
	w := BinaryWriter{}
	return w.Write(path, File{Data: data}, appendExisting)
}
