package directory

import (
	"errors"
	"strings"
	"testing"
)

func TestEntryValue(t *testing.T) {
	e := Entry{DN: "cn=test", Attrs: map[string][]string{
		"cn":   {"test", "alias"},
		"desc": {},
	}}
	if got := e.Value("cn"); got != "test" {
		t.Errorf("Value(cn) = %q, want test", got)
	}
	if got := e.Value("desc"); got != "" {
		t.Errorf("Value(desc) = %q, want empty", got)
	}
	if got := e.Value("missing"); got != "" {
		t.Errorf("Value(missing) = %q, want empty", got)
	}
}

func TestScopeString(t *testing.T) {
	tests := []struct {
		scope Scope
		want  string
	}{
		{ScopeBase, "base"},
		{ScopeOne, "one"},
		{ScopeSub, "sub"},
	}
	for _, tt := range tests {
		if got := tt.scope.String(); got != tt.want {
			t.Errorf("Scope(%d).String() = %q, want %q", int(tt.scope), got, tt.want)
		}
	}
}

func TestQueryError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &QueryError{Server: "ipa01.example.com", Base: "cn=config", Err: inner}

	msg := err.Error()
	if !strings.Contains(msg, "ipa01.example.com") || !strings.Contains(msg, "cn=config") {
		t.Errorf("Error() = %q, want server and base", msg)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should unwrap to the inner error")
	}
}

func TestDump(t *testing.T) {
	entries := []Entry{
		{DN: "uid=alice,cn=users", Attrs: map[string][]string{
			"uid":  {"alice"},
			"mail": {"alice@example.com", "a@example.com"},
		}},
		{DN: "uid=bob,cn=users", Attrs: map[string][]string{"uid": {"bob"}}},
	}

	got := string(Dump(entries))
	want := "dn: uid=alice,cn=users\n" +
		"mail: alice@example.com\n" +
		"mail: a@example.com\n" +
		"uid: alice\n" +
		"\n" +
		"dn: uid=bob,cn=users\n" +
		"uid: bob\n" +
		"\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

func TestDumpEmpty(t *testing.T) {
	if got := Dump(nil); len(got) != 0 {
		t.Errorf("Dump(nil) = %q, want empty", got)
	}
}
