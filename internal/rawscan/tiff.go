package rawscan

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var (
	magicLE    = []byte("II*\x00")
	magicBE    = []byte("MM\x00*")
	exifMarker = []byte("Exif\x00\x00")
)

// tiffHeaderSize is byte order (2) + magic 42 (2) + offset of IFD0 (4).
const tiffHeaderSize = 8

// FindTIFFHeader returns the offset of the TIFF header inside buf. A bare
// little-endian TIFF starts at 0; otherwise the header follows the first
// "Exif\0\0" marker. When neither is present it falls back to 0 and leaves
// it to the byte-order check to reject non-TIFF data.
func FindTIFFHeader(buf []byte) int {
	if bytes.HasPrefix(buf, magicLE) {
		return 0
	}
	if i := bytes.Index(buf, exifMarker); i >= 0 {
		return i + len(exifMarker)
	}
	return 0
}

// byteOrder reads the TIFF magic at the start of tiff.
func byteOrder(tiff []byte) (binary.ByteOrder, error) {
	if len(tiff) < tiffHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a TIFF header", ErrInvalidFormat, len(tiff))
	}
	switch {
	case bytes.Equal(tiff[:4], magicLE):
		return binary.LittleEndian, nil
	case bytes.Equal(tiff[:4], magicBE):
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("%w: bad TIFF magic % x", ErrInvalidFormat, tiff[:4])
}
