package replicheck

import (
	"github.com/bianoble/replicheck/internal/audit"
	"github.com/bianoble/replicheck/internal/check"
	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
	"github.com/bianoble/replicheck/internal/report"
)

// Type aliases re-export internal result types as the public API.
// Users import "github.com/bianoble/replicheck/pkg/replicheck" and use
// replicheck.Report, replicheck.Severity, etc.

type Server = config.Server
type Check = check.Check
type Outcome = check.Outcome
type Verdict = check.Verdict
type Agreement = check.Agreement
type Report = audit.Report
type Severity = report.Severity
type QueryError = directory.QueryError
type Querier = directory.Querier
type Entry = directory.Entry

const (
	VerdictNone = check.VerdictNone
	VerdictOK   = check.VerdictOK
	VerdictFail = check.VerdictFail

	SeverityOK       = report.SeverityOK
	SeverityWarning  = report.SeverityWarning
	SeverityCritical = report.SeverityCritical
	SeverityUnknown  = report.SeverityUnknown
)
