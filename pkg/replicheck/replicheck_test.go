package replicheck

import (
	"context"
	"strings"
	"testing"

	"github.com/bianoble/replicheck/internal/directory"
)

type fakeQuerier struct {
	answer func(server string, req directory.Request) ([]directory.Entry, error)
}

func (f *fakeQuerier) Query(ctx context.Context, server string, req directory.Request) ([]directory.Entry, error) {
	return f.answer(server, req)
}

func healthyQuerier() Querier {
	return &fakeQuerier{answer: func(server string, req directory.Request) ([]directory.Entry, error) {
		switch {
		case req.Base == "cn=config":
			return []directory.Entry{{DN: "cn=config", Attrs: map[string][]string{
				"nsslapd-allow-anonymous-access": {"off"},
			}}}, nil
		case req.Base == "cn=mapping tree,cn=config":
			return nil, nil
		case strings.Contains(req.Filter, "nsds5ReplConflict"):
			return nil, nil
		default:
			return []directory.Entry{{DN: "cn=e", Attrs: map[string][]string{}}}, nil
		}
	}}
}

func TestAuditWithFakeQuerier(t *testing.T) {
	rep, err := Audit(context.Background(), Options{
		Servers: []string{"ipa01", "ipa02"},
		Domain:  "example.com",
		Querier: healthyQuerier(),
	})
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if rep.Passed != 11 || rep.Total != 11 {
		t.Errorf("Passed/Total = %d/%d, want 11/11", rep.Passed, rep.Total)
	}
	if len(rep.Servers) != 2 || rep.Servers[0].Host != "ipa01.example.com" {
		t.Errorf("servers = %v, want expanded FQDNs", rep.Servers)
	}
}

func TestAuditInvalidOptions(t *testing.T) {
	_, err := Audit(context.Background(), Options{Domain: "example.com"})
	if err == nil {
		t.Fatal("expected validation error without servers")
	}
}

func TestSummaryLine(t *testing.T) {
	rep, err := Audit(context.Background(), Options{
		Servers: []string{"ipa01", "ipa02"},
		Domain:  "example.com",
		Querier: healthyQuerier(),
	})
	if err != nil {
		t.Fatal(err)
	}

	line, sev, err := Summary(rep, 1, 2)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sev != SeverityOK {
		t.Errorf("severity = %v, want OK", sev)
	}
	if line != "OK - 11/11 checks passed" {
		t.Errorf("line = %q", line)
	}
}

func TestSummaryInvalidThresholds(t *testing.T) {
	rep := &Report{}
	if _, _, err := Summary(rep, 3, 1); err == nil {
		t.Fatal("expected error for critical < warning")
	}
	if _, _, err := Summary(rep, -1, 2); err == nil {
		t.Fatal("expected error for negative warning")
	}
}

func TestRenderIncludesEveryLabel(t *testing.T) {
	rep, err := Audit(context.Background(), Options{
		Servers: []string{"ipa01"},
		Domain:  "example.com",
		Querier: healthyQuerier(),
	})
	if err != nil {
		t.Fatal(err)
	}

	out := Render(rep)
	for _, label := range []string{
		"Active Users", "Stage Users", "Preserved Users", "User Groups",
		"Hosts", "Host Groups", "HBAC Rules", "SUDO Rules", "DNS Zones",
		"LDAP Conflicts", "Anonymous Bind", "Replication",
	} {
		if !strings.Contains(out, label) {
			t.Errorf("rendered report missing %q", label)
		}
	}
}

func TestDecideExported(t *testing.T) {
	if got := Decide(0, 1, 2); got != SeverityOK {
		t.Errorf("Decide(0,1,2) = %v, want OK", got)
	}
	if got := Decide(3, 1, 2); got != SeverityCritical {
		t.Errorf("Decide(3,1,2) = %v, want CRITICAL", got)
	}
}
