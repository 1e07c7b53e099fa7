package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/backmassage/jpgfromraw/internal/config"
	"github.com/backmassage/jpgfromraw/internal/display"
	"github.com/backmassage/jpgfromraw/internal/logging"
	"github.com/backmassage/jpgfromraw/internal/rawscan"
	"github.com/backmassage/jpgfromraw/internal/storage"
	"github.com/backmassage/jpgfromraw/internal/term"
)

// InventoryRow describes the embedded previews of one RAW file.
type InventoryRow struct {
	Name        string // Path relative to the input root.
	Count       int    // Directories declaring a JPEG offset and length.
	Largest     int    // Length in bytes; 0 when Count is 0.
	Smallest    int
	Orientation uint16 // Orientation of the largest preview.
	Err         error
}

// Inventory is the --list entry point: it scans every discovered file
// without writing anything and prints one table row per file to w.
func Inventory(ctx context.Context, cfg *config.Config, log *logging.Logger, w io.Writer) error {
	layout, err := NewLayout(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return err
	}
	tasks, err := Discover(layout, cfg.Extensions())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		log.Warn("No RAW files found in %s", cfg.InputDir)
		return nil
	}
	log.Info("Scanning %d files...", len(tasks))

	opener := storage.Default()
	progress := display.NewProgress("Scanning", len(tasks), log)
	rows := make([]InventoryRow, 0, len(tasks))
	for _, t := range tasks {
		if ctx.Err() != nil {
			log.ClearStatus()
			log.Warn("Interrupted")
			break
		}
		row := ScanFile(opener, t)
		progress.Advance(t.RelPath, row.Err != nil)
		rows = append(rows, row)
	}
	log.ClearStatus()

	PrintInventory(w, rows)
	failed := 0
	for _, r := range rows {
		if r.Err != nil {
			failed++
			log.Debug(cfg.Verbose, "%s: %v", r.Name, r.Err)
		}
	}
	log.Info("%d files, %d without a usable preview", len(rows), failed)
	return nil
}

// ScanFile reports every candidate preview of one file.
func ScanFile(opener storage.Opener, t FileTask) InventoryRow {
	row := InventoryRow{Name: t.RelPath}
	view, err := opener.Open(t.InputPath)
	if err != nil {
		row.Err = err
		return row
	}
	defer view.Close()

	buf := view.Bytes()
	tiff := buf[rawscan.FindTIFFHeader(buf):]
	err = rawscan.Walk(tiff, func(img rawscan.EmbeddedImage) {
		row.Count++
		if img.Length > row.Largest {
			row.Largest = img.Length
			row.Orientation = img.OrientationOrDefault()
		}
		if row.Smallest == 0 || img.Length < row.Smallest {
			row.Smallest = img.Length
		}
	})
	if err == nil && row.Count == 0 {
		err = rawscan.ErrNotFound
	}
	row.Err = err
	return row
}

// PrintInventory writes rows as an aligned table. Rows without a usable
// preview are flagged in red.
func PrintInventory(w io.Writer, rows []InventoryRow) {
	nameW := len("File")
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.Name); n > nameW {
			nameW = n
		}
	}
	if nameW > 50 {
		nameW = 50
	}
	const countW, sizeW, orientW = len("Previews"), 10, len("Orientation")

	header := fmt.Sprintf("  %-*s  %*s  %*s  %*s  %*s",
		nameW, "File",
		countW, "Previews",
		sizeW, "Largest",
		sizeW, "Smallest",
		orientW, "Orientation",
	)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for _, r := range rows {
		name := display.Truncate(r.Name, nameW)
		if r.Err != nil {
			fmt.Fprintf(w, "  %-*s  %s%s%s\n", nameW, name, term.Red, r.Err.Error(), term.NC)
			continue
		}
		fmt.Fprintf(w, "  %-*s  %*d  %*s  %*s  %*d\n",
			nameW, name,
			countW, r.Count,
			sizeW, display.FormatBytes(int64(r.Largest)),
			sizeW, display.FormatBytes(int64(r.Smallest)),
			orientW, r.Orientation,
		)
	}
	fmt.Fprintln(w)
}
