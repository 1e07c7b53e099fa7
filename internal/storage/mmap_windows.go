//go:build windows

package storage

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Default returns the preferred Opener for this platform.
func Default() Opener { return MmapOpener{} }

// MmapOpener maps files read-only with CreateFileMapping and
// MapViewOfFile. Windows has no madvise equivalent in x/sys, so Prefetch
// is a no-op; pages are faulted in on first read.
type MmapOpener struct{}

// Name implements Opener.
func (MmapOpener) Name() string { return "mapviewoffile" }

// Open implements Opener. The file and mapping handles are closed before
// returning; the view stays valid until the View is closed.
func (MmapOpener) Open(path string) (View, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size, err := mapSize(f, path)
	if err != nil {
		return nil, err
	}

	size64 := uint64(size)
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY,
		uint32(size64>>32), uint32(size64), nil)
	if err != nil {
		return nil, &os.PathError{Op: "CreateFileMapping", Path: path, Err: err}
	}
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, &os.PathError{Op: "MapViewOfFile", Path: path, Err: err}
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &mmapView{data: data, addr: addr}, nil
}

type mmapView struct {
	data []byte
	addr uintptr
}

func (v *mmapView) Bytes() []byte { return v.data }

func (v *mmapView) Prefetch(off, length int) {}

func (v *mmapView) Close() error {
	if v.data == nil {
		return nil
	}
	v.data = nil
	return windows.UnmapViewOfFile(v.addr)
}
