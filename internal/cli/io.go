package cli

import (
	"fmt"
	"io"
)

// IO splits user-facing output from warnings.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Warn reports a problem that does not stop the session.
//
// Parameters:
//   - issue: what went wrong
//   - action: what the user can do about it
func (o *IO) Warn(issue string, action string) {
	_, _ = fmt.Fprintf(o.errOut, "warning: %s: %s\n", issue, action)
}
