// Package logging provides the leveled, optionally colored logger shared by
// all concurrently running extraction tasks.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/term"
)

// Logger writes timestamped lines to stdout (ERROR to stderr) and,
// optionally, appends them uncolored to a log file. On a TTY it can also
// keep one inline status line pinned below the log output. All methods are
// goroutine-safe.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	tty      bool
	status   string
	file     *os.File
	filePath string
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{
		out:    os.Stdout,
		errOut: os.Stderr,
		tty:    term.IsTerminal(os.Stdout),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

// Close clears any status line and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.ClearStatus()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Status replaces the inline status line. It is a no-op unless stdout is a
// terminal, and is never written to the log file.
func (l *Logger) Status(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.tty {
		return
	}
	l.status = text
	_, _ = io.WriteString(l.out, "\r"+text)
}

// ClearStatus erases the status line.
func (l *Logger) ClearStatus() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status == "" {
		return
	}
	l.status = ""
	_, _ = io.WriteString(l.out, term.ClearLine())
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.status != "" {
		_, _ = io.WriteString(l.out, term.ClearLine())
	}

	plain := ts + " [" + level + "] " + text + "\n"
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}

	if l.status != "" {
		_, _ = io.WriteString(l.out, "\r"+l.status)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
