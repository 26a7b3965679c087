// Package report prints check outcomes for humans.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter writes success lines to Out and failures to Err.
type Reporter struct {
	Out, Err io.Writer

	ok   *color.Color
	fail *color.Color
}

// New returns a Reporter. Colors are disabled when noColor is set; fatih/color
// also honors NO_COLOR and non-terminal output.
func New(out, errw io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		Out:  out,
		Err:  errw,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		r.ok.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

func (r *Reporter) Success(format string, args ...any) {
	r.ok.Fprintf(r.Out, "✅ %s\n", fmt.Sprintf(format, args...)) //nolint:errcheck // best effort console output
}

func (r *Reporter) Failure(err error) {
	r.fail.Fprintf(r.Err, "❌ %v\n", err) //nolint:errcheck // best effort console output
}
