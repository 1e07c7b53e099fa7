// Package check provides system diagnostics (--check mode) and the
// pre-pipeline path validation (CheckPaths) run before every extraction.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/storage"
)

// Sentinel errors returned by CheckPaths.
var (
	ErrInputMissing      = errors.New("input directory does not exist")
	ErrInputNotDir       = errors.New("input path is not a directory")
	ErrOutputNotDir      = errors.New("output path exists and is not a directory")
	ErrOutputNotWritable = errors.New("output directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the --check flow: it reports the storage backend, memory
// page size, CPU count, extraction settings, and, when an input directory
// was given, validates the paths. It returns false if any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkStorage(log)
	log.Info("CPUs: %d (transfers: %d)", runtime.NumCPU(), cfg.Transfers)
	log.Info("Preview selection: %s", cfg.Select)
	log.Info("Extensions: %s", strings.Join(cfg.Extensions(), ", "))

	if cfg.InputDir == "" {
		log.Debug(cfg.Verbose, "No input directory given, skipping path checks")
		return ok
	}
	if err := CheckPaths(cfg); err != nil {
		log.Error("%v", err)
		return false
	}
	log.Success("Paths OK: %s -> %s", cfg.InputDir, cfg.OutputDir)
	return ok
}

// checkStorage maps a small scratch file through the default opener to
// confirm the backend works on this system.
func checkStorage(log Logger) bool {
	opener := storage.Default()
	log.Info("Storage backend: %s (page size %d)", opener.Name(), os.Getpagesize())

	f, err := os.CreateTemp("", "jpgfromraw-check-*")
	if err != nil {
		log.Warn("Cannot create scratch file: %v", err)
		return true
	}
	defer os.Remove(f.Name())
	_, err = f.Write([]byte("II*\x00check"))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Warn("Cannot write scratch file: %v", err)
		return true
	}

	view, err := opener.Open(f.Name())
	if err != nil {
		log.Error("%s backend failed: %v", opener.Name(), err)
		return false
	}
	defer view.Close()
	view.Prefetch(0, len(view.Bytes()))
	if string(view.Bytes()[:4]) != "II*\x00" {
		log.Error("%s backend returned unexpected bytes", opener.Name())
		return false
	}
	log.Success("%s backend works", opener.Name())
	return true
}

// CheckPaths verifies that the input directory exists and that the output
// directory either does not exist yet or is a writable directory.
func CheckPaths(cfg *config.Config) error {
	fi, err := os.Stat(cfg.InputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputMissing, cfg.InputDir)
		}
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotDir, cfg.InputDir)
	}

	fi, err = os.Stat(cfg.OutputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputNotDir, cfg.OutputDir)
	}

	scratch := filepath.Join(cfg.OutputDir, ".jpgfromraw-"+uuid.NewString())
	f, err := os.OpenFile(scratch, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputNotWritable, cfg.OutputDir, err)
	}
	f.Close()
	return os.Remove(scratch)
}
