package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/backmassage/jpgfromraw/internal/preview"
	"github.com/backmassage/jpgfromraw/internal/rawscan"
	"github.com/backmassage/jpgfromraw/internal/storage"
)

// Extractor turns one FileTask into one preview file. It holds no
// per-task state, so a single value is shared by all workers.
type Extractor struct {
	Opener       storage.Opener
	Select       rawscan.Selection
	SkipExisting bool
	DryRun       bool
}

// Extract maps the input, locates the preview, and writes the assembled
// JPEG to task.OutputPath through a temporary file renamed into place.
func (x *Extractor) Extract(task FileTask) Outcome {
	o := Outcome{Path: task.InputPath}

	if x.SkipExisting {
		if _, err := os.Stat(task.OutputPath); err == nil {
			o.Skipped = true
			o.Output = task.OutputPath
			return o
		}
	}

	view, err := x.Opener.Open(task.InputPath)
	if err != nil {
		o.Err = err
		return o
	}
	defer view.Close()

	buf := view.Bytes()
	img, err := rawscan.Find(buf, x.Select)
	if err != nil {
		o.Err = err
		return o
	}
	o.Image = img
	view.Prefetch(img.Offset, img.Length)
	body := buf[img.Offset:img.End()]
	if err := preview.Check(body); err != nil {
		o.Err = err
		return o
	}

	if x.DryRun {
		o.Bytes = int64(preview.Size(len(body)))
		return o
	}

	n, err := writeAtomic(task.OutputPath, body, img.OrientationOrDefault())
	if err != nil {
		o.Err = err
		return o
	}
	o.Output = task.OutputPath
	o.Bytes = n
	return o
}

// writeAtomic writes the assembled preview to a uniquely named temporary
// file beside path, then renames it over path. Readers never observe a
// partially written preview, and a failed write leaves no file behind.
func writeAtomic(path string, body []byte, orientation uint16) (int64, error) {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	w := bufio.NewWriterSize(f, 64<<10)
	n, err := preview.WriteTo(w, body, orientation)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		removeErr := os.Remove(tmp)
		if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = multierror.Append(err, removeErr)
		}
		return 0, fmt.Errorf("write output: %w", err)
	}
	return n, nil
}
