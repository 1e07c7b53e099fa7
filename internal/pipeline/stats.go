package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/backmassage/jpgfromraw/internal/rawscan"
)

// Outcome is the result of one task.
type Outcome struct {
	Path    string // Input path.
	Output  string // Output path (empty if nothing was written).
	Err     error
	Bytes   int64 // Bytes written, or that would be written in a dry run.
	Skipped bool  // Output existed, or the run was interrupted first.
	Image   rawscan.EmbeddedImage
}

// Failed reports whether the task ended in an error.
func (o Outcome) Failed() bool { return o.Err != nil && !o.Skipped }

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total        int
	Succeeded    int
	Skipped      int
	Failed       int
	BytesWritten int64
	Outcomes     []Outcome // Completion order, not task order.
}

func (s *RunStats) record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch {
	case o.Skipped:
		s.Skipped++
	case o.Err != nil:
		s.Failed++
	default:
		s.Succeeded++
		s.BytesWritten += o.Bytes
	}
}

// Err returns nil when no task failed, otherwise a *multierror.Error with
// one "path: cause" entry per failed task.
func (s *RunStats) Err() error {
	var result *multierror.Error
	for _, o := range s.Outcomes {
		if o.Failed() {
			result = multierror.Append(result, fmt.Errorf("%s: %w", o.Path, o.Err))
		}
	}
	return result.ErrorOrNil()
}
