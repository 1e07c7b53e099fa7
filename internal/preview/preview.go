// Package preview turns an embedded JPEG stream into a standalone file.
//
// Previews inside RAW files carry no Exif block, so the camera orientation
// is lost once they are cut out. Output therefore starts with a fixed
// 34-byte prologue: SOI, then an APP1 "Exif" segment holding a
// little-endian TIFF with a single Orientation entry. The preview follows
// without its own SOI marker.
package preview

import (
	"encoding/binary"
	"errors"
	"io"
)

// HeaderSize is the length of the synthetic SOI + APP1 prologue.
const HeaderSize = 34

// soiSize is the length of the SOI marker dropped from the preview body.
const soiSize = 2

// ErrShortImage is returned for bodies too short to hold an SOI marker.
var ErrShortImage = errors.New("embedded JPEG shorter than its SOI marker")

var headerTemplate = [HeaderSize]byte{
	0xff, 0xd8, // SOI
	0xff, 0xe1, // APP1
	0x00, 0x1e, // segment length, including these two bytes
	'E', 'x', 'i', 'f', 0x00, 0x00,
	'I', 'I', 0x2a, 0x00, // little-endian TIFF
	0x08, 0x00, 0x00, 0x00, // IFD0 offset
	0x01, 0x00, // one entry
	0x12, 0x01, // Orientation
	0x03, 0x00, // SHORT
	0x01, 0x00, 0x00, 0x00, // count
	0x00, 0x00, // value, filled in by Header
	0x00, 0x00, // next IFD
}

// orientationPos is where the orientation value sits in the header.
const orientationPos = 30

// Header returns the prologue carrying orientation.
func Header(orientation uint16) [HeaderSize]byte {
	h := headerTemplate
	binary.LittleEndian.PutUint16(h[orientationPos:], orientation)
	return h
}

// Size returns the length of the output produced for a body of n bytes.
func Size(n int) int {
	return HeaderSize + n - soiSize
}

// Check reports whether body can be assembled at all.
func Check(body []byte) error {
	if len(body) < soiSize {
		return ErrShortImage
	}
	return nil
}

// Assemble returns the prologue followed by body minus its SOI marker.
func Assemble(body []byte, orientation uint16) ([]byte, error) {
	if err := Check(body); err != nil {
		return nil, err
	}
	h := Header(orientation)
	out := make([]byte, 0, Size(len(body)))
	out = append(out, h[:]...)
	return append(out, body[soiSize:]...), nil
}

// WriteTo streams the same bytes as Assemble to w without building them in
// memory, so a mapped body is copied straight into the output file.
func WriteTo(w io.Writer, body []byte, orientation uint16) (int64, error) {
	if err := Check(body); err != nil {
		return 0, err
	}
	h := Header(orientation)
	n, err := w.Write(h[:])
	written := int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(body[soiSize:])
	written += int64(n)
	return written, err
}
