//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package storage

import (
	"os"

	"golang.org/x/sys/unix"
)

// Default returns the preferred Opener for this platform.
func Default() Opener { return MmapOpener{} }

// MmapOpener maps files read-only with mmap(2) and prefetches with
// madvise(MADV_WILLNEED).
type MmapOpener struct{}

// Name implements Opener.
func (MmapOpener) Name() string { return "mmap+madvise" }

// Open implements Opener. The file descriptor is closed before returning;
// the mapping stays valid until the View is closed.
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

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &mmapView{data: data}, nil
}

type mmapView struct {
	data []byte
}

func (v *mmapView) Bytes() []byte { return v.data }

// Prefetch rounds off down to a page boundary since madvise requires an
// aligned address. Errors are ignored.
func (v *mmapView) Prefetch(off, length int) {
	if off < 0 || length <= 0 || off >= len(v.data) {
		return
	}
	end := off + length
	if end > len(v.data) || end < off {
		end = len(v.data)
	}
	start := off &^ (os.Getpagesize() - 1)
	_ = unix.Madvise(v.data[start:end], unix.MADV_WILLNEED)
}

func (v *mmapView) Close() error {
	if v.data == nil {
		return nil
	}
	err := unix.Munmap(v.data)
	v.data = nil
	return err
}
