// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/jpgfromraw/internal/rawscan"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultExtensions is the built-in list of RAW file extensions, lowercase
// and without a leading dot. Matching is case-insensitive.
var DefaultExtensions = []string{
	"arw", "cr2", "crw", "dng", "erf", "kdc", "mef", "mrw", "nef", "nrw",
	"orf", "pef", "raf", "raw", "rw2", "rwl", "sr2", "srf", "srw", "x3f",
}

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. Nothing mutates it once the pipeline starts.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string // Default: ".".

	// Extraction.
	Transfers int               // Default: 8. Files processed concurrently.
	Extension string            // Extra extension on top of DefaultExtensions, no dot.
	Select    rawscan.Selection // Default: largest.

	// Behavior flags.
	DryRun       bool // Scan only; write nothing.
	SkipExisting bool // Leave outputs that already exist untouched.
	ListOnly     bool // Print the preview inventory and exit.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Transfers: 8,
		Select:    rawscan.Largest,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtension lowercases ext and strips one leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Extensions returns the active extension list: the defaults plus the
// configured extra extension, if any and not already present.
func (c *Config) Extensions() []string {
	exts := append([]string(nil), DefaultExtensions...)
	extra := NormalizeExtension(c.Extension)
	if extra == "" {
		return exts
	}
	for _, e := range exts {
		if e == extra {
			return exts
		}
	}
	return append(exts, extra)
}

// Validate checks numeric limits and enum fields, and normalizes the extra
// extension. When not in CheckOnly mode it also requires an input directory.
func (c *Config) Validate() error {
	if c.Transfers < 1 {
		return fmt.Errorf("transfers must be at least 1 (got %d)", c.Transfers)
	}

	switch c.Select {
	case rawscan.Largest, rawscan.Smallest:
		// valid
	default:
		return errors.New("invalid selection (use 'largest' or 'smallest')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Extension = NormalizeExtension(c.Extension)
	if strings.ContainsAny(c.Extension, `/\.`) {
		return fmt.Errorf("invalid extension %q (use a bare extension such as 'dcr')", c.Extension)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need an input_dir")
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

// OutputNested reports whether the resolved output directory lies strictly
// inside the resolved input directory. Discovery skips that subtree so
// previous runs' outputs are never rescanned. Both arguments must be
// absolute, symlink-resolved paths.
func OutputNested(inputAbs, outputAbs string) bool {
	sep := string(filepath.Separator)
	return outputAbs != inputAbs && strings.HasPrefix(outputAbs+sep, inputAbs+sep)
}
