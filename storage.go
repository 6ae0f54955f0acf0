package huffpack

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage is the file access used by Codec: whole-file reads and writes, and
// streaming reads for Compare.
type Storage interface {
	// ReadFile returns the entire contents of the named file.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the named file with data.  If it fails, the
	// named file must not be left holding partial data.
	WriteFile(name string, data []byte) error

	// Open opens the named file for reading and reports its size.
	Open(name string) (io.ReadCloser, int64, error)
}

// DefaultPerm is the permission used by OSStorage when Perm is zero.
const DefaultPerm fs.FileMode = 0o644

// OSStorage is a Storage backed by the local filesystem.
type OSStorage struct {
	// Perm is the permission given to written files.
	Perm fs.FileMode
}

// ReadFile implements Storage.
func (OSStorage) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile implements Storage.  The data is written to a temporary file in
// the same directory, which is then renamed over name.
func (s OSStorage) WriteFile(name string, data []byte) (err error) {
	perm := s.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, name)
}

// Open implements Storage.
func (OSStorage) Open(name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return f, fi.Size(), nil
}

var _ Storage = OSStorage{}
