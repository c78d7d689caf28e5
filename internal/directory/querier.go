// Package directory talks to LDAP replicas. The rest of the program only
// depends on the Querier contract, so checks can be tested against fakes.
package directory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
)

// Scope selects how deep a search descends below its base.
type Scope int

const (
	ScopeBase Scope = iota
	ScopeOne
	ScopeSub
)

func (s Scope) String() string {
	switch s {
	case ScopeBase:
		return "base"
	case ScopeOne:
		return "one"
	case ScopeSub:
		return "sub"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Request describes one directory search.
type Request struct {
	Base       string
	Scope      Scope
	Filter     string
	Attributes []string
}

// Entry is one returned directory entry, flattened to attribute values.
type Entry struct {
	DN    string
	Attrs map[string][]string
}

// Value returns the first value of the named attribute, or "" when absent.
func (e Entry) Value(name string) string {
	if vs := e.Attrs[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Querier is the capability the audit engine consumes: run one search
// against one server. Implementations must be safe for concurrent use.
type Querier interface {
	Query(ctx context.Context, server string, req Request) ([]Entry, error)
}

// QueryError reports a failed search against a single server.
type QueryError struct {
	Server string
	Base   string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("querying %s under '%s': %v", e.Server, e.Base, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Dump renders entries as attribute-value lines, the raw payload format
// kept in the working directory for diagnosis.
func Dump(entries []Entry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "dn: %s\n", e.DN)
		names := make([]string, 0, len(e.Attrs))
		for name := range e.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, v := range e.Attrs[name] {
				fmt.Fprintf(&buf, "%s: %s\n", name, v)
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
