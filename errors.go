package cmdbind

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// commandError tags a configuration error with the command it came from.
func commandError(name string, err error) error {
	return fmt.Errorf("command %q: %w", name, err)
}

// reportError writes the single-failure report: an "Error:" line with the
// message, and a "Details:" line with the immediate cause when the error is
// wrapped. The prefix is colored only when writing to a terminal with
// NO_COLOR unset.
func reportError(w io.Writer, err error) {
	red, reset := errorColor(w)
	fmt.Fprintf(w, "%sError:%s %s\n", red, reset, err)
	if inner := errors.Unwrap(err); inner != nil {
		fmt.Fprintf(w, "%sDetails:%s %s\n", red, reset, inner)
	}
}

// errorColor returns the ANSI escape pair for the error prefix, or empty
// strings when w is not an interactive terminal or NO_COLOR is set.
func errorColor(w io.Writer) (string, string) {
	if os.Getenv("NO_COLOR") != "" {
		return "", ""
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", ""
	}
	return "\033[31m", "\033[0m"
}
