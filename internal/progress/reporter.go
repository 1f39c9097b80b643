// Package progress reports long-running CLI work such as dataset imports.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while rows are written.
type Reporter interface {
	Start(total int, label string)
	Update(current int)
	Finish()
}

// NewReporter returns a TerminalReporter when attached to a terminal, or a
// LineReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr, Every: 25}
	}
	return &TerminalReporter{}
}

// Func adapts r to the callback shape used by dataset.Store.Save. The bar
// is started on the first call, once the total is known.
func Func(r Reporter, label string) func(done, total int) {
	started := false
	return func(done, total int) {
		if !started {
			r.Start(total, label)
			started = true
		}
		r.Update(done)
	}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, label string) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int) {
	if r.bar != nil {
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints a line every Every rows and on the last one,
// suitable for CI logs.
type LineReporter struct {
	Out   io.Writer
	Every int

	total int
	label string
}

func (r *LineReporter) Start(total int, label string) {
	r.total = total
	r.label = label
	fmt.Fprintf(r.Out, "%s: %d rows\n", label, total)
}

func (r *LineReporter) Update(current int) {
	if current == r.total || (r.Every > 0 && current%r.Every == 0) {
		fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, r.label)
	}
}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.Out, "%s: done\n", r.label)
}
