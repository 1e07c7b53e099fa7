// Package display formats human-facing output: the banner, byte sizes, and
// the inline progress line.
package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/jpgfromraw/internal/term"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), "KMGTPE"[exp:exp+1]+"iB")
}

// ProgressLine renders "  Extracting [3/10] 30% (1 failed) IMG_0003.CR2",
// truncating name and padding to term.StatusWidth columns.
func ProgressLine(label string, current, total, failed int, name string) string {
	pct := 100
	if total > 0 {
		pct = current * 100 / total
	}
	status := fmt.Sprintf("  %s [%d/%d] %d%% ", label, current, total, pct)
	if failed > 0 {
		status += fmt.Sprintf("(%d failed) ", failed)
	}

	status += Truncate(name, 40)

	if n := utf8.RuneCountInString(status); n < term.StatusWidth {
		status += strings.Repeat(" ", term.StatusWidth-n)
	}
	return status
}

// Truncate shortens s to at most max runes, ending in "…" when cut. It
// never splits a multibyte character.
func Truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
