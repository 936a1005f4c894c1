package pygen

import (
	"fmt"
	"io"
	"strings"
)

// indentUnit is one level of indentation in the emitted script.
const indentUnit = "    "

// scriptWriter writes indented script text. The first write error sticks and
// turns later writes into no-ops, so call sites stay linear.
type scriptWriter struct {
	w      io.Writer
	indent int
	err    error
}

func newScriptWriter(w io.Writer) *scriptWriter {
	return &scriptWriter{w: w}
}

func (sw *scriptWriter) write(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

// line writes one indented line. Blank input produces a bare newline so the
// output carries no trailing whitespace.
func (sw *scriptWriter) line(s string) {
	if s == "" {
		sw.write("\n")
		return
	}
	sw.write(strings.Repeat(indentUnit, sw.indent))
	sw.write(s)
	sw.write("\n")
}

func (sw *scriptWriter) linef(format string, args ...any) {
	sw.line(fmt.Sprintf(format, args...))
}

func (sw *scriptWriter) blank() {
	sw.write("\n")
}
