// Package printer writes leveled diagnostic messages for pdbdiff users.
//
// Comparison tables go to stdout through pkg/output; everything printed here
// goes to stderr so it never mixes with report output.
package printer

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

var (
	// Stderr is the printer behind the package-level functions.
	Stderr P = NewP(os.Stderr)
	// Color colors level prefixes; SetColor switches it on.
	Color = aurora.NewAurora(false)

	debug atomic.Bool
)

// ColorMode selects when ANSI colors are emitted.
type ColorMode string

const (
	// ColorAuto colors only when writing to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways always emits colors.
	ColorAlways ColorMode = "always"
	// ColorNever never emits colors.
	ColorNever ColorMode = "never"
)

// SetDebug enables or disables Debugf output.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debug.Load()
}

// UseColor reports whether output written to f should be colored under mode.
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// SetColor switches the shared aurora instance on or off.
func SetColor(enabled bool) {
	Color = aurora.NewAurora(enabled)
}

// Infof prints an [INFO] line on Stderr.
func Infof(format string, args ...interface{}) {
	Stderr.Infof(format, args...)
}

// Warningf prints a [WARNING] line on Stderr.
func Warningf(format string, args ...interface{}) {
	Stderr.Warningf(format, args...)
}

// Errorf prints an [ERROR] line on Stderr.
func Errorf(format string, args ...interface{}) {
	Stderr.Errorf(format, args...)
}

// Debugf prints a [DEBUG] line on Stderr when debug is on.
func Debugf(format string, args ...interface{}) {
	Stderr.Debugf(format, args...)
}

// P prints prefixed messages to a single writer.
type P interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type impl struct {
	out io.Writer
}

// NewP returns a printer writing to out.
func NewP(out io.Writer) P {
	return impl{out: out}
}

func (p impl) Infof(format string, args ...interface{}) {
	fmt.Fprint(p.out, Color.Blue("[INFO] ").String())
	fmt.Fprintf(p.out, format, args...)
}

func (p impl) Warningf(format string, args ...interface{}) {
	fmt.Fprint(p.out, Color.Yellow("[WARNING] ").String())
	fmt.Fprintf(p.out, format, args...)
}

func (p impl) Errorf(format string, args ...interface{}) {
	fmt.Fprint(p.out, Color.Red("[ERROR] ").String())
	fmt.Fprintf(p.out, format, args...)
}

func (p impl) Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	fmt.Fprint(p.out, Color.Magenta("[DEBUG] ").String())
	fmt.Fprintf(p.out, format, args...)
}
