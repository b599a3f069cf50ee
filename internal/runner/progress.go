package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lexkit/wordvet/internal/domain"
)

// Progress emits one line per processed word: overwritten in place on an
// interactive terminal, appended as discrete lines otherwise.
type Progress struct {
	w   io.Writer
	tty bool
}

// NewProgress creates a Progress writing to w, probing w for terminal
// capability when it is an *os.File.
func NewProgress(w io.Writer) *Progress {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Progress{w: w, tty: tty}
}

// Step reports the verdict for the word at position done of total.
func (p *Progress) Step(done, total int, word string, v domain.Verdict) {
	var outcome string
	switch {
	case v.Valid:
		outcome = fmt.Sprintf("ok (%s)", v.Source)
	default:
		outcome = fmt.Sprintf("invalid (%s)", v.Reason)
	}
	line := fmt.Sprintf("[%d/%d] %s: %s", done, total, word, outcome)

	if p.tty {
		// \x1b[K clears the remainder of the previous, possibly longer line.
		fmt.Fprintf(p.w, "\r%s\x1b[K", line)
		return
	}
	fmt.Fprintln(p.w, line)
}

// Finish terminates the in-place line so the summary starts cleanly.
func (p *Progress) Finish() {
	if p.tty {
		fmt.Fprintln(p.w)
	}
}
