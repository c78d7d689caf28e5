package check

import (
	"context"
	"sync"

	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
	"github.com/bianoble/replicheck/internal/workdir"
)

// Runner executes one check against every server concurrently.
type Runner struct {
	Querier directory.Querier
	Workdir *workdir.Dir // optional raw payload dumps
}

// Outcome is the completed result of one check: exactly one comparable
// unit per configured server, in server order, plus the verdict.
type Outcome struct {
	Check  Check
	Values []string // aligned with the server set; Sentinel on query failure

	// Agreements holds the per-server replication agreement lists for the
	// replication check; empty for every other kind.
	Agreements [][]Agreement

	Verdict Verdict
}

// Run fans the check out to all servers, waits for every answer, and
// evaluates consistency. A failed query becomes the sentinel for that
// server; it never aborts the check.
func (r *Runner) Run(ctx context.Context, chk Check, servers []config.Server) Outcome {
	out := Outcome{
		Check:  chk,
		Values: make([]string, len(servers)),
	}
	if chk.Kind == KindReplication {
		out.Agreements = make([][]Agreement, len(servers))
	}

	var wg sync.WaitGroup
	for i, srv := range servers {
		wg.Add(1)
		go func(i int, srv config.Server) {
			defer wg.Done()

			entries, err := r.Querier.Query(ctx, srv.Host, chk.Request)
			if err != nil {
				out.Values[i] = Sentinel
				return
			}
			if r.Workdir != nil {
				_ = r.Workdir.WritePayload(chk.Name, srv.Short, directory.Dump(entries))
			}

			if chk.Kind == KindReplication {
				out.Agreements[i] = parseAgreements(entries)
				return
			}
			out.Values[i] = normalize(chk, entries)
		}(i, srv)
	}
	wg.Wait()

	out.Verdict = Evaluate(chk, out.Values)
	return out
}
