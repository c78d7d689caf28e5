package report

import "fmt"

// Severity is the aggregate alerting level derived from the failed-check
// count, with monitoring-plugin exit code semantics.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Code returns the process exit code for the severity.
func (s Severity) Code() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return 3
	}
}

// Decide maps a failed-check count against the two thresholds. First match
// wins; the UNKNOWN fallback is unreachable once thresholds validate but is
// kept so a bad count can never be reported as healthy.
func Decide(failed, warning, critical int) Severity {
	switch {
	case failed >= 0 && failed < warning:
		return SeverityOK
	case failed >= warning && failed < critical:
		return SeverityWarning
	case failed >= critical:
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

// Summary renders the machine-readable one-liner.
func Summary(sev Severity, passed, total int) string {
	return fmt.Sprintf("%s - %d/%d checks passed", sev, passed, total)
}
