package logship

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// StderrErrorHandler is a ready-made ErrorHandler that writes one-line
// diagnostics to stderr, in red when stderr is a terminal. It gives hosts a
// zero-setup secondary channel for failures the shim absorbed.
func StderrErrorHandler(err error) {
	writeDiagnostic(os.Stderr, err, isTerminal(os.Stderr))
}

func writeDiagnostic(out io.Writer, err error, colored bool) {
	if err == nil {
		return
	}

	if colored {
		fmt.Fprintf(out, "\x1b[31mlogship: %v\x1b[0m\n", err)

		return
	}

	fmt.Fprintf(out, "logship: %v\n", err)
}

// isTerminal reports whether the writer is connected to a terminal.
func isTerminal(out io.Writer) bool {
	if f, ok := out.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}
