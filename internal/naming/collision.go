package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver hands out output paths so that no two inputs share one.
// Inputs that differ only by extension (IMG_1.cr2, IMG_1.dng) would both
// mirror to IMG_1.jpg; the second claimant receives "IMG_1 - dup1.jpg".
// All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path → input path that owns it
	counters map[string]int    // requested output path → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the output path input should write to. A requested path
// that is unclaimed, or already owned by input, is returned unchanged.
func (cr *CollisionResolver) Resolve(input, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[requested]
	if !exists || owner == input {
		cr.owners[requested] = input
		return requested
	}

	dir := filepath.Dir(requested)
	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(filepath.Base(requested), ext)

	n := cr.counters[requested]
	if n == 0 {
		n = 1
	}
	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, n, ext))
		if o, taken := cr.owners[candidate]; !taken || o == input {
			cr.counters[requested] = n + 1
			cr.owners[candidate] = input
			return candidate
		}
		n++
	}
}
