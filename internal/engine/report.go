package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// NoReport discards every progress line
type NoReport struct{}

// Report implements Reporter
func (NoReport) Report(string) {}

// WriterReporter writes each progress line followed by a newline
type WriterReporter struct {
	w io.Writer
}

// NewWriterReporter creates a WriterReporter, typically over os.Stdout
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

// Report implements Reporter
func (r *WriterReporter) Report(line string) {
	_, _ = fmt.Fprintln(r.w, line)
}

// ReporterFunc adapts a function to a Reporter
type ReporterFunc func(line string)

// Report implements Reporter
func (f ReporterFunc) Report(line string) {
	f(line)
}

// progressLine formats "<sha12><indent> * <subject>"; the indent is two
// spaces per open section, and left out entirely when depth is negative.
func progressLine(id plumbing.Hash, depth int, msg string) string {
	indent := ""
	if depth > 0 {
		indent = strings.Repeat("  ", depth)
	}
	return fmt.Sprintf("%s%s * %s", shortID(id), indent, subjectOf(msg))
}
