package check

// Verdict is the consistency outcome of one check.
type Verdict int

const (
	// VerdictNone marks checks that render output without contributing
	// an OK/FAIL bit (the replication table).
	VerdictNone Verdict = iota
	VerdictOK
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "OK"
	case VerdictFail:
		return "FAIL"
	default:
		return ""
	}
}

// Consistent judges the per-server comparable units, ordered by server.
// OK iff every server reports the identical value and none errored; the
// sentinel forces FAIL even when every server reports it.
func Consistent(values []string) Verdict {
	if len(values) == 0 {
		return VerdictFail
	}
	for _, v := range values {
		if v == Sentinel {
			return VerdictFail
		}
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return VerdictFail
		}
	}
	return VerdictOK
}

// Evaluate applies the consistency rule plus the check's own pass
// condition: a flag check with WantFlag set also requires the reference
// (first) server to report that value.
func Evaluate(chk Check, values []string) Verdict {
	if !chk.Contributing() {
		return VerdictNone
	}
	v := Consistent(values)
	if v == VerdictOK && chk.WantFlag != "" && values[0] != chk.WantFlag {
		return VerdictFail
	}
	return v
}
