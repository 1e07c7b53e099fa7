// Package rawscan locates the JPEG previews embedded in TIFF-based camera
// RAW files.
//
// The scanner works directly on the (usually memory-mapped) file buffer and
// only follows the IFD0 → IFD1 → … chain, reading three tags per directory:
// JPEGInterchangeFormat (0x0201), JPEGInterchangeFormatLength (0x0202) and
// Orientation (0x0112). Nothing is copied out of the buffer.
package rawscan

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Sentinel errors. Callers should match them with errors.Is.
var (
	ErrInvalidFormat = errors.New("invalid TIFF structure")
	ErrNotFound      = errors.New("no embedded JPEG found")
)

const (
	tagOrientation = 0x0112
	tagJPEGOffset  = 0x0201
	tagJPEGLength  = 0x0202

	ifdEntrySize = 12

	// maxIFDs caps the chain length; real RAW files have a handful.
	maxIFDs = 1024
)

// EmbeddedImage describes one embedded JPEG. The zero value means "not
// found". Offset is relative to the buffer it was found in.
type EmbeddedImage struct {
	Offset         int
	Length         int
	Orientation    uint16
	HasOrientation bool
}

// OrientationOrDefault returns the Exif orientation, or 1 (no rotation)
// when the directory did not carry one.
func (e EmbeddedImage) OrientationOrDefault() uint16 {
	if !e.HasOrientation {
		return 1
	}
	return e.Orientation
}

// End returns the offset one past the last byte of the image.
func (e EmbeddedImage) End() int { return e.Offset + e.Length }

// Find locates the TIFF header in buf and returns the embedded JPEG chosen
// by sel, with its offset relative to buf.
func Find(buf []byte, sel Selection) (EmbeddedImage, error) {
	return FindAt(buf, FindTIFFHeader(buf), sel)
}

// FindAt is Find with an explicit TIFF header offset.
func FindAt(buf []byte, tiffOffset int, sel Selection) (EmbeddedImage, error) {
	if tiffOffset < 0 || tiffOffset > len(buf) {
		return EmbeddedImage{}, fmt.Errorf("%w: TIFF header offset %d outside %d-byte buffer", ErrInvalidFormat, tiffOffset, len(buf))
	}
	tiff := buf[tiffOffset:]

	var best EmbeddedImage
	err := Walk(tiff, func(candidate EmbeddedImage) {
		if sel.prefer(candidate, best) {
			best = candidate
		}
	})
	if err != nil {
		return EmbeddedImage{}, err
	}
	if best == (EmbeddedImage{}) {
		return EmbeddedImage{}, ErrNotFound
	}
	if !fits(uint64(best.Offset), uint64(best.Length), len(tiff)) {
		return EmbeddedImage{}, fmt.Errorf("%w: JPEG at %d+%d exceeds %d-byte TIFF data", ErrNotFound, best.Offset, best.Length, len(tiff))
	}

	best.Offset += tiffOffset
	return best, nil
}

// Walk follows the IFD chain of the TIFF stream in tiff and calls fn once
// per directory that declares both a JPEG offset and length. Offsets passed
// to fn are relative to the start of tiff and are not bounds-checked
// against it.
//
// Within a directory the entries are read in order and scanning stops as
// soon as both JPEG tags have been seen, so an orientation tag is only
// reported if it precedes that point.
func Walk(tiff []byte, fn func(EmbeddedImage)) error {
	order, err := byteOrder(tiff)
	if err != nil {
		return err
	}

	visited := make(map[uint32]bool)
	next := order.Uint32(tiff[4:8])
	for next != 0 {
		if visited[next] {
			return fmt.Errorf("%w: IFD chain loops back to offset %d", ErrInvalidFormat, next)
		}
		if len(visited) == maxIFDs {
			return fmt.Errorf("%w: more than %d IFDs in chain", ErrInvalidFormat, maxIFDs)
		}
		visited[next] = true

		next, err = walkIFD(tiff, order, next, fn)
		if err != nil {
			return err
		}
	}
	return nil
}

// walkIFD scans the directory at off and returns the offset of the next one.
func walkIFD(tiff []byte, order binary.ByteOrder, off uint32, fn func(EmbeddedImage)) (uint32, error) {
	pos := uint64(off)
	if !fits(pos, 2, len(tiff)) {
		return 0, fmt.Errorf("%w: IFD offset %d outside %d-byte TIFF data", ErrInvalidFormat, off, len(tiff))
	}
	count := uint64(order.Uint16(tiff[pos:]))
	entries := pos + 2
	tableLen := count * ifdEntrySize
	if !fits(entries, tableLen, len(tiff)) {
		return 0, fmt.Errorf("%w: IFD at %d declares %d entries past end of data", ErrInvalidFormat, off, count)
	}

	var (
		cur               EmbeddedImage
		hasOffset, hasLen bool
	)
	for i := uint64(0); i < count; i++ {
		entry := tiff[entries+i*ifdEntrySize:][:ifdEntrySize]
		switch order.Uint16(entry[0:2]) {
		case tagJPEGOffset:
			cur.Offset = int(order.Uint32(entry[8:12]))
			hasOffset = true
		case tagJPEGLength:
			cur.Length = int(order.Uint32(entry[8:12]))
			hasLen = true
		case tagOrientation:
			cur.Orientation = order.Uint16(entry[8:10])
			cur.HasOrientation = true
		}
		if hasOffset && hasLen {
			fn(cur)
			break
		}
	}

	nextPos := entries + tableLen
	if !fits(nextPos, 4, len(tiff)) {
		return 0, fmt.Errorf("%w: next-IFD offset of IFD at %d is past end of data", ErrInvalidFormat, off)
	}
	return order.Uint32(tiff[nextPos:]), nil
}

// fits reports whether [off, off+n) lies inside a buffer of size bytes.
func fits(off, n uint64, size int) bool {
	return off+n <= uint64(size)
}
