// Package symlog provides the leveled, ANSI-colored diagnostics used
// throughout this module, mirroring the package-level log.DEBUG/
// log.TRACE calling convention and the @c{...} colorize markup carried
// over from the teacher's logging idiom.
package symlog

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
)

// DebugOn and TraceOn gate DEBUG and TRACE output; both default to off.
// TRACE implies DEBUG. cmd/symreg's --debug/--trace flags set these.
var (
	DebugOn bool
	TraceOn bool
)

func init() {
	ansi.Color(isatty.IsTerminal(os.Stderr.Fd()))
}

// DEBUG writes a colorized diagnostic line to stderr when DebugOn (or
// TraceOn) is set.
func DEBUG(format string, args ...interface{}) {
	if !DebugOn && !TraceOn {
		return
	}
	fmt.Fprintf(os.Stderr, ansi.Sprintf("@G{DEBUG> }%s\n", fmt.Sprintf(format, args...)))
}

// TRACE writes a colorized diagnostic line to stderr when TraceOn is set.
func TRACE(format string, args ...interface{}) {
	if !TraceOn {
		return
	}
	fmt.Fprintf(os.Stderr, ansi.Sprintf("@B{TRACE> }%s\n", fmt.Sprintf(format, args...)))
}

// INFO writes an unconditional colorized status line to stderr.
func INFO(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, ansi.Sprintf("@c{INFO> }%s\n", fmt.Sprintf(format, args...)))
}

// WARN writes an unconditional colorized warning line to stderr — used
// by the energy model when a fit or evaluation fails locally and the
// tree falls back to sse=+Inf.
func WARN(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, ansi.Sprintf("@Y{WARN> }%s\n", fmt.Sprintf(format, args...)))
}
