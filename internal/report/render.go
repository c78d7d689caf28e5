// Package report turns a completed audit into its two presentation modes:
// the human fixed-width table and the machine summary line.
package report

import (
	"strings"

	"github.com/bianoble/replicheck/internal/audit"
	"github.com/bianoble/replicheck/internal/check"
	"github.com/bianoble/replicheck/internal/config"
)

const (
	minValueWidth = 6
	stateWidth    = 5 // len("STATE")
	stateHeader   = "STATE"
)

// Widths fixes the table's column geometry. It is computed once from the
// full server set and the check labels, then applied to every row.
type Widths struct {
	Label int
	Value int
	State int
}

// WidthPolicy derives the column widths for a server set.
func WidthPolicy(servers []config.Server) Widths {
	label := 0
	for _, chk := range check.Checklist("") {
		if n := len(chk.Label); n > label {
			label = n
		}
	}
	value := minValueWidth
	for _, srv := range servers {
		if n := len(srv.Short) + 4; n > value {
			value = n
		}
	}
	return Widths{Label: label + 2, Value: value, State: stateWidth}
}

// Total returns the full table width for the given server count.
func (w Widths) Total(servers int) int {
	return w.Label + servers*w.Value + w.State
}

// RenderHuman renders the full fixed-width report table.
func RenderHuman(rep *audit.Report) string {
	w := WidthPolicy(rep.Servers)
	rule := strings.Repeat("=", w.Total(len(rep.Servers)))

	var b strings.Builder
	pad(&b, "", w.Label)
	for _, srv := range rep.Servers {
		pad(&b, srv.Short, w.Value)
	}
	b.WriteString(stateHeader)
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')

	for _, out := range rep.Outcomes {
		renderRows(&b, out, w)
	}

	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String()
}

// renderRows writes a check's row block: one line for scalar checks, one
// line per agreement slot for the replication table.
func renderRows(b *strings.Builder, out check.Outcome, w Widths) {
	if out.Check.Kind != check.KindReplication {
		pad(b, out.Check.Label, w.Label)
		for _, v := range out.Values {
			pad(b, v, w.Value)
		}
		b.WriteString(out.Verdict.String())
		b.WriteByte('\n')
		return
	}

	lines := 1
	for _, ags := range out.Agreements {
		if len(ags) > lines {
			lines = len(ags)
		}
	}

	for line := 0; line < lines; line++ {
		label := ""
		if line == 0 {
			label = out.Check.Label
		}
		pad(b, label, w.Label)
		for i := range out.Agreements {
			cell := ""
			switch {
			case line < len(out.Agreements[i]):
				cell = out.Agreements[i][line].String()
			case line == 0 && out.Values[i] == check.Sentinel:
				cell = check.Sentinel
			}
			pad(b, cell, w.Value)
		}
		b.WriteByte('\n')
	}
}

// pad writes a left-justified cell of the given width. Cells longer than
// the column keep a single trailing space so columns never fuse.
func pad(b *strings.Builder, s string, width int) {
	b.WriteString(s)
	if n := width - len(s); n > 0 {
		b.WriteString(strings.Repeat(" ", n))
	} else {
		b.WriteByte(' ')
	}
}
