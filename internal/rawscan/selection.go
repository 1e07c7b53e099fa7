package rawscan

import (
	"fmt"
	"strings"
)

// Selection decides which embedded JPEG wins when several IFDs carry one.
type Selection int

const (
	Largest  Selection = iota // Biggest preview by byte length (default).
	Smallest                  // Smallest preview, usually a thumbnail.
)

// String returns the flag spelling of s.
func (s Selection) String() string {
	switch s {
	case Largest:
		return "largest"
	case Smallest:
		return "smallest"
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

// ParseSelection accepts "largest" or "smallest" in any case.
func ParseSelection(v string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "largest":
		return Largest, nil
	case "smallest":
		return Smallest, nil
	}
	return Largest, fmt.Errorf("invalid selection %q (use 'largest' or 'smallest')", v)
}

// prefer reports whether candidate should replace best. The first candidate
// always wins because best.Length is still zero; ties keep the earlier one.
func (s Selection) prefer(candidate, best EmbeddedImage) bool {
	if s == Smallest {
		return candidate.Length < best.Length || best.Length == 0
	}
	return candidate.Length > best.Length
}
