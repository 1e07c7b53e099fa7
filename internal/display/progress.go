package display

import "sync"

// StatusWriter displays a single, repeatedly overwritten status line.
// *logging.Logger implements it.
type StatusWriter interface {
	Status(text string)
}

// Progress counts finished tasks across goroutines and renders the count
// through a StatusWriter.
type Progress struct {
	mu     sync.Mutex
	label  string
	total  int
	done   int
	failed int
	w      StatusWriter
}

// NewProgress returns a counter for total tasks, shown as e.g.
// "Extracting [n/total]". w may be nil.
func NewProgress(label string, total int, w StatusWriter) *Progress {
	return &Progress{label: label, total: total, w: w}
}

// Advance records one finished task named name.
func (p *Progress) Advance(name string, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if failed {
		p.failed++
	}
	if p.w != nil {
		p.w.Status(ProgressLine(p.label, p.done, p.total, p.failed, name))
	}
}

// Done returns the number of tasks recorded so far.
func (p *Progress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
