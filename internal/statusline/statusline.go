// Package statusline implements the single-line, carriage-return-driven
// progress display used while scanning, with terminal-width-aware elision
// of long path strings.
package statusline

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// fallbackWidth is used when the output stream isn't a terminal or its size
// can't be determined.
const fallbackWidth = 80

// Printer provides printing facilities for a dynamically updating status
// line in the console. It supports colorized printing and is a no-op when
// Disabled is set, so that --no-progress (or --quiet) can suppress status
// line chatter without scattering conditionals through the caller.
type Printer struct {
	// Disabled suppresses all output, used for --no-progress and --quiet.
	Disabled bool
	// nonEmpty indicates whether the printer has printed any non-empty
	// content to the status line.
	nonEmpty bool
}

// IsTerminal reports whether the given file is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the terminal width of stdout, falling back to fallbackWidth
// when stdout isn't a terminal or its size can't be queried.
func Width() int {
	if !IsTerminal(os.Stdout) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// Print prints a message to the status line, overwriting any existing
// content. The message is elided to fit the terminal width if necessary.
func (p *Printer) Print(message string) {
	if p.Disabled {
		return
	}
	width := Width()
	message = Elide(message, width)
	fmt.Fprintf(color.Output, "\r%-*s", width, message)
	p.nonEmpty = true
}

// Clear clears any content on the status line and moves the cursor back to
// the beginning of the line.
func (p *Printer) Clear() {
	if p.Disabled {
		return
	}
	p.Print("")
	fmt.Fprint(os.Stdout, "\r")
	p.nonEmpty = false
}

// BreakIfNonEmpty prints a newline character if the current line is
// non-empty.
func (p *Printer) BreakIfNonEmpty() {
	if p.Disabled {
		return
	}
	if p.nonEmpty {
		fmt.Fprintln(os.Stdout)
		p.nonEmpty = false
	}
}

// Elide shortens message to fit within width columns by dropping its
// leading characters and marking the cut with a single "..."; the tail is
// kept, so a long message loses its beginning, not its path. Elision only
// ever affects what's displayed — never the recorded path.
func Elide(message string, width int) string {
	if width <= 0 || len(message) <= width {
		return message
	}
	if width <= 1 {
		return message[:width]
	}
	// Keep the tail of the message (the filename is more informative than
	// the leading directory components) and mark the elision with "...".
	const ellipsis = "..."
	if width <= len(ellipsis) {
		return message[len(message)-width:]
	}
	keep := width - len(ellipsis)
	return ellipsis + message[len(message)-keep:]
}
