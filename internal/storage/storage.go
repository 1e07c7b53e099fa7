// Package storage opens RAW files as read-only byte views.
//
// A [View] exposes the whole file as a []byte without copying it where the
// platform allows (see [MmapOpener]). [View.Prefetch] is only a hint to the
// OS page cache; every implementation must behave identically when it does
// nothing.
package storage

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyFile is returned when the file has no bytes to map.
var ErrEmptyFile = errors.New("file is empty")

// View is a read-only view of a file's contents. The slice returned by
// Bytes is valid until Close is called.
type View interface {
	Bytes() []byte
	// Prefetch hints that bytes [off, off+length) will be read soon.
	Prefetch(off, length int)
	Close() error
}

// Opener turns a path into a View.
type Opener interface {
	Open(path string) (View, error)
	// Name identifies the backend in diagnostics.
	Name() string
}

// ReadOpener reads the whole file into memory. Default only returns it on
// platforms with no file mapping support (plan9, js, wasip1); its Prefetch
// is a no-op.
type ReadOpener struct{}

// Name implements Opener.
func (ReadOpener) Name() string { return "read" }

// Open implements Opener.
func (ReadOpener) Open(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return FromBytes(data), nil
}

// mapSize returns the size of the open file f as an int, rejecting empty
// files and files too large to address.
func mapSize(f *os.File, path string) (int, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := fi.Size()
	if size == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if int64(int(size)) != size {
		return 0, fmt.Errorf("%s: file too large to map (%d bytes)", path, size)
	}
	return int(size), nil
}

// FromBytes wraps an in-memory buffer as a View.
func FromBytes(data []byte) View {
	return &memView{data: data}
}

type memView struct {
	data []byte
}

func (v *memView) Bytes() []byte { return v.data }

func (v *memView) Prefetch(off, length int) {}

func (v *memView) Close() error {
	v.data = nil
	return nil
}
