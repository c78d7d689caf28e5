package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bianoble/replicheck/internal/check"
	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
)

type fakeQuerier struct {
	answer func(server string, req directory.Request) ([]directory.Entry, error)
}

func (f *fakeQuerier) Query(ctx context.Context, server string, req directory.Request) ([]directory.Entry, error) {
	return f.answer(server, req)
}

func testServers() []config.Server {
	return []config.Server{
		{Short: "ipa01", Host: "ipa01.example.com"},
		{Short: "ipa02", Host: "ipa02.example.com"},
	}
}

func entries(n int) []directory.Entry {
	es := make([]directory.Entry, n)
	for i := range es {
		es[i] = directory.Entry{DN: "cn=e", Attrs: map[string][]string{}}
	}
	return es
}

// agreeingQuerier answers every check identically on every server.
func agreeingQuerier() *fakeQuerier {
	return &fakeQuerier{answer: func(server string, req directory.Request) ([]directory.Entry, error) {
		switch {
		case req.Base == "cn=config":
			return []directory.Entry{{DN: "cn=config", Attrs: map[string][]string{
				"nsslapd-allow-anonymous-access": {"off"},
			}}}, nil
		case req.Base == "cn=mapping tree,cn=config":
			return []directory.Entry{{DN: "cn=a", Attrs: map[string][]string{
				"nsDS5ReplicaHost":             {"ipa02.example.com"},
				"nsds5replicaLastUpdateStatus": {"Error (0) ok"},
			}}}, nil
		case strings.Contains(req.Filter, "nsds5ReplConflict"):
			return nil, nil // no conflicts
		default:
			return entries(5), nil
		}
	}}
}

func TestRunAllChecksPass(t *testing.T) {
	rep := Run(context.Background(), agreeingQuerier(), testServers(), "dc=example,dc=com", nil)

	if len(rep.Outcomes) != 12 {
		t.Fatalf("outcomes = %d, want 12", len(rep.Outcomes))
	}
	if rep.Total != 11 {
		t.Errorf("Total = %d, want 11 contributing checks", rep.Total)
	}
	if rep.Passed != 11 {
		for _, out := range rep.Outcomes {
			if out.Verdict == check.VerdictFail {
				t.Logf("failed: %s values=%v", out.Check.Name, out.Values)
			}
		}
		t.Errorf("Passed = %d, want 11", rep.Passed)
	}
	if rep.Failed() != 0 {
		t.Errorf("Failed() = %d, want 0", rep.Failed())
	}
}

func TestRunOutcomesInDeclarationOrder(t *testing.T) {
	rep := Run(context.Background(), agreeingQuerier(), testServers(), "dc=example,dc=com", nil)

	want := check.Checklist("dc=example,dc=com")
	for i, out := range rep.Outcomes {
		if out.Check.Name != want[i].Name {
			t.Errorf("outcomes[%d] = %s, want %s", i, out.Check.Name, want[i].Name)
		}
	}
}

func TestRunOneServerErroring(t *testing.T) {
	base := agreeingQuerier()
	q := &fakeQuerier{answer: func(server string, req directory.Request) ([]directory.Entry, error) {
		if server == "ipa02.example.com" {
			return nil, errors.New("connection refused")
		}
		return base.answer(server, req)
	}}

	rep := Run(context.Background(), q, testServers(), "dc=example,dc=com", nil)

	// Every contributing check fails: the sentinel can never match.
	if rep.Passed != 0 {
		t.Errorf("Passed = %d, want 0 when one server errors on every check", rep.Passed)
	}
	if rep.Failed() != 11 {
		t.Errorf("Failed() = %d, want 11", rep.Failed())
	}
	for _, out := range rep.Outcomes {
		if len(out.Values) != 2 {
			t.Fatalf("%s: values = %d, want one per server", out.Check.Name, len(out.Values))
		}
		if out.Values[1] != check.Sentinel {
			t.Errorf("%s: values[1] = %q, want sentinel", out.Check.Name, out.Values[1])
		}
	}
}

func TestRunPartialFailure(t *testing.T) {
	base := agreeingQuerier()
	q := &fakeQuerier{answer: func(server string, req directory.Request) ([]directory.Entry, error) {
		// Only the hosts subtree disagrees between servers.
		if req.Base == "cn=computers,cn=accounts,dc=example,dc=com" && server == "ipa02.example.com" {
			return entries(4), nil
		}
		return base.answer(server, req)
	}}

	rep := Run(context.Background(), q, testServers(), "dc=example,dc=com", nil)

	if rep.Passed != 10 {
		t.Errorf("Passed = %d, want 10", rep.Passed)
	}
	if rep.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", rep.Failed())
	}
	for _, out := range rep.Outcomes {
		if out.Check.Name == "hosts" && out.Verdict != check.VerdictFail {
			t.Errorf("hosts verdict = %v, want FAIL", out.Verdict)
		}
		if out.Check.Name == "user_groups" && out.Verdict != check.VerdictOK {
			t.Errorf("user_groups verdict = %v, want OK (independent of hosts)", out.Verdict)
		}
	}
}

func TestRunConsistentConflictsStillFail(t *testing.T) {
	base := agreeingQuerier()
	q := &fakeQuerier{answer: func(server string, req directory.Request) ([]directory.Entry, error) {
		if strings.Contains(req.Filter, "nsds5ReplConflict") {
			return entries(2), nil // every server reports conflicts
		}
		return base.answer(server, req)
	}}

	rep := Run(context.Background(), q, testServers(), "dc=example,dc=com", nil)

	for _, out := range rep.Outcomes {
		if out.Check.Name != "ldap_conflicts" {
			continue
		}
		if out.Values[0] != "YES" {
			t.Errorf("conflict flag = %q, want YES", out.Values[0])
		}
		if out.Verdict != check.VerdictFail {
			t.Errorf("verdict = %v, want FAIL despite consistency", out.Verdict)
		}
	}
}
