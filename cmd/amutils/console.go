package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// outcome classifies one line of command output.
type outcome int

const (
	outcomeNote outcome = iota
	outcomeDone
	outcomeWarn
	outcomeFailed
)

var outcomeStyles = [...]struct{ tag, color string }{
	outcomeNote:   {"INFO", "\x1b[34m"},
	outcomeDone:   {"OK", "\x1b[32m"},
	outcomeWarn:   {"WARN", "\x1b[33m"},
	outcomeFailed: {"ERROR", "\x1b[31m"},
}

const resetColor = "\x1b[0m"

// fact is one label/value pair in a command summary.
type fact struct {
	label string
	value string
}

func count(label string, n int) fact {
	return fact{label: label, value: fmt.Sprint(n)}
}

// console writes per-item outcomes and summaries. On a terminal lines are
// coloured and summaries become tables; otherwise output stays greppable.
type console struct {
	out  io.Writer
	tty  bool
	pad  int
	lead string
}

func newConsole(out io.Writer) *console {
	return &console{out: out, tty: isTerminal(out), pad: 20, lead: "  "}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// outcomeLine formats "  subject: [TAG] detail".
func (c *console) outcomeLine(subject string, o outcome, detail string) string {
	style := outcomeStyles[o]
	body := "[" + style.tag + "]"
	if detail != "" {
		body += " " + detail
	}
	line := fmt.Sprintf("%s%-*s %s", c.lead, c.pad, subject+":", body)
	if c.tty {
		return style.color + line + resetColor
	}
	return line
}

func (c *console) report(subject string, o outcome, detail string) {
	fmt.Fprintln(c.out, c.outcomeLine(subject, o, detail))
}

// summarize prints facts under an optional heading.
func (c *console) summarize(heading string, facts ...fact) {
	if c.tty {
		rows := make([][]string, len(facts))
		for i, f := range facts {
			rows[i] = []string{f.label, f.value}
		}
		fmt.Fprintln(c.out, renderTitledTable(heading, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
		return
	}
	if heading != "" {
		fmt.Fprintln(c.out, heading)
	}
	for _, f := range facts {
		fmt.Fprintf(c.out, "%s: %s\n", f.label, f.value)
	}
}
