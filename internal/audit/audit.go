// Package audit coordinates the full consistency run: every check fanned
// out to every server, collected behind a barrier, and assembled into a
// report in declaration order.
package audit

import (
	"context"
	"sync"

	"github.com/bianoble/replicheck/internal/check"
	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
	"github.com/bianoble/replicheck/internal/workdir"
)

// Report is the completed outcome of one audit run.
type Report struct {
	Servers  []config.Server
	Outcomes []check.Outcome // declaration order, one per check

	// Passed and Total count only verdict-bearing checks.
	Passed int
	Total  int
}

// Failed returns the number of contributing checks that did not pass.
func (r *Report) Failed() int { return r.Total - r.Passed }

// Run executes every check concurrently against the server set. Each
// check's outcome is written to its own slot, so the only coordination
// point is the final barrier; results are assembled in declaration order
// regardless of completion order.
func Run(ctx context.Context, q directory.Querier, servers []config.Server, suffix string, wd *workdir.Dir) *Report {
	checks := check.Checklist(suffix)
	runner := &check.Runner{Querier: q, Workdir: wd}

	outcomes := make([]check.Outcome, len(checks))
	var wg sync.WaitGroup
	for i, chk := range checks {
		wg.Add(1)
		go func(i int, chk check.Check) {
			defer wg.Done()
			outcomes[i] = runner.Run(ctx, chk, servers)
		}(i, chk)
	}
	wg.Wait()

	rep := &Report{Servers: servers, Outcomes: outcomes}
	for _, out := range outcomes {
		if !out.Check.Contributing() {
			continue
		}
		rep.Total++
		if out.Verdict == check.VerdictOK {
			rep.Passed++
		}
	}
	return rep
}
