// Package replicheck provides the public Go library API for the replica
// consistency auditor, for embedding the audit in other programs.
//
// # Basic Usage
//
//	rep, err := replicheck.Audit(ctx, replicheck.Options{
//	    Servers: []string{"ipa01", "ipa02"},
//	    Domain:  "example.com",
//	    BindPassword: pw,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sev := replicheck.Decide(rep.Failed(), 1, 2)
package replicheck

import (
	"context"
	"fmt"
	"time"

	"github.com/bianoble/replicheck/internal/audit"
	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
	"github.com/bianoble/replicheck/internal/report"
)

// Options configures an audit run.
type Options struct {
	// Servers are the replicas to audit, in column order. Short names are
	// expanded with Domain.
	Servers []string

	// Domain expands short server names and, when Suffix is empty,
	// derives the directory suffix.
	Domain string

	// Suffix overrides the derived directory suffix.
	Suffix string

	BindDN       string // default "cn=Directory Manager"
	BindPassword string
	Port         int // default 389
	StartTLS     bool

	// Timeout bounds each query; zero waits indefinitely.
	Timeout time.Duration

	// Querier overrides the LDAP client, for tests and custom transports.
	Querier Querier
}

// Audit runs all consistency checks against the configured servers and
// returns the completed report.
func Audit(ctx context.Context, opts Options) (*Report, error) {
	cfg := &config.Config{
		Servers:      opts.Servers,
		Domain:       opts.Domain,
		Suffix:       opts.Suffix,
		BindDN:       opts.BindDN,
		BindPassword: opts.BindPassword,
		Port:         opts.Port,
		StartTLS:     opts.StartTLS,
		Timeout:      int(opts.Timeout / time.Second),
	}
	cfg.ApplyDefaults()
	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}

	q := opts.Querier
	if q == nil {
		q = &directory.Client{
			Port:         cfg.Port,
			BindDN:       cfg.BindDN,
			BindPassword: cfg.BindPassword,
			StartTLS:     cfg.StartTLS,
			Timeout:      opts.Timeout,
		}
	}

	return audit.Run(ctx, q, cfg.ServerSet(), cfg.Suffix, nil), nil
}

// Decide maps a failed-check count against the warning and critical
// thresholds. Thresholds must satisfy 0 <= warning <= critical.
func Decide(failed, warning, critical int) Severity {
	return report.Decide(failed, warning, critical)
}

// Summary renders the machine-readable summary line for a report.
func Summary(rep *Report, warning, critical int) (string, Severity, error) {
	if warning < 0 || critical < warning {
		return "", SeverityUnknown, fmt.Errorf("invalid thresholds: warning=%d critical=%d", warning, critical)
	}
	sev := report.Decide(rep.Failed(), warning, critical)
	return report.Summary(sev, rep.Passed, rep.Total), sev, nil
}

// Render returns the human-readable fixed-width table for a report.
func Render(rep *Report) string {
	return report.RenderHuman(rep)
}
