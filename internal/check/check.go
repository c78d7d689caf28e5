// Package check defines the fixed consistency checks and the machinery that
// runs one check against every replica and judges the answers.
package check

import (
	"github.com/bianoble/replicheck/internal/directory"
)

// Kind selects how a check's raw payload is reduced to a comparable unit.
type Kind int

const (
	// KindCount compares the number of returned entries.
	KindCount Kind = iota
	// KindFlag compares YES/NO presence of matching entries.
	KindFlag
	// KindValue compares a single attribute value.
	KindValue
	// KindReplication renders the replication agreement table; it carries
	// no OK/FAIL verdict into the tally.
	KindReplication
)

// Sentinel replaces a server's comparable unit when its query fails.
// It can never equal a real value, so any occurrence forces FAIL.
const Sentinel = "ERROR"

// Attributes consulted by the flag, value, and replication checks.
const (
	attrConflict     = "nsds5ReplConflict"
	attrAnonAccess   = "nsslapd-allow-anonymous-access"
	attrReplicaHost  = "nsDS5ReplicaHost"
	attrUpdateStatus = "nsds5replicaLastUpdateStatus"
)

// Check is one named consistency metric with its query specification.
type Check struct {
	Name    string
	Label   string
	Request directory.Request
	Kind    Kind

	// WantFlag, when set on a flag check, is the value the first server
	// must report for the check to pass even when all servers agree.
	WantFlag string
}

// Contributing reports whether the check's verdict counts toward the
// pass/fail tally.
func (c Check) Contributing() bool {
	return c.Kind != KindReplication
}

// Checklist returns the fixed checks in declaration order for the given
// directory suffix. The order is the rendering order.
func Checklist(suffix string) []Check {
	return []Check{
		{
			Name:  "active_users",
			Label: "Active Users",
			Request: directory.Request{
				Base:   "cn=users,cn=accounts," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(&(objectClass=person)(!(nsAccountLock=TRUE)))",
			},
			Kind: KindCount,
		},
		{
			Name:  "stage_users",
			Label: "Stage Users",
			Request: directory.Request{
				Base:   "cn=staged users,cn=accounts,cn=provisioning," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(objectClass=person)",
			},
			Kind: KindCount,
		},
		{
			Name:  "preserved_users",
			Label: "Preserved Users",
			Request: directory.Request{
				Base:   "cn=deleted users,cn=accounts,cn=provisioning," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(objectClass=person)",
			},
			Kind: KindCount,
		},
		{
			Name:  "user_groups",
			Label: "User Groups",
			Request: directory.Request{
				Base:   "cn=groups,cn=accounts," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(objectClass=ipausergroup)",
			},
			Kind: KindCount,
		},
		{
			Name:  "hosts",
			Label: "Hosts",
			Request: directory.Request{
				Base:   "cn=computers,cn=accounts," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(fqdn=*)",
			},
			Kind: KindCount,
		},
		{
			Name:  "host_groups",
			Label: "Host Groups",
			Request: directory.Request{
				Base:   "cn=hostgroups,cn=accounts," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(objectClass=ipahostgroup)",
			},
			Kind: KindCount,
		},
		{
			Name:  "hbac_rules",
			Label: "HBAC Rules",
			Request: directory.Request{
				Base:   "cn=hbac," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(ipaUniqueID=*)",
			},
			Kind: KindCount,
		},
		{
			Name:  "sudo_rules",
			Label: "SUDO Rules",
			Request: directory.Request{
				Base:   "cn=sudorules,cn=sudo," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(ipaUniqueID=*)",
			},
			Kind: KindCount,
		},
		{
			Name:  "dns_zones",
			Label: "DNS Zones",
			Request: directory.Request{
				Base:   "cn=dns," + suffix,
				Scope:  directory.ScopeOne,
				Filter: "(|(objectClass=idnszone)(objectClass=idnsforwardzone))",
			},
			Kind: KindCount,
		},
		{
			Name:  "ldap_conflicts",
			Label: "LDAP Conflicts",
			Request: directory.Request{
				Base:       suffix,
				Scope:      directory.ScopeSub,
				Filter:     "(" + attrConflict + "=*)",
				Attributes: []string{attrConflict},
			},
			Kind:     KindFlag,
			WantFlag: "NO",
		},
		{
			Name:  "anonymous_bind",
			Label: "Anonymous Bind",
			Request: directory.Request{
				Base:       "cn=config",
				Scope:      directory.ScopeBase,
				Filter:     "(objectClass=*)",
				Attributes: []string{attrAnonAccess},
			},
			Kind: KindValue,
		},
		{
			Name:  "replication",
			Label: "Replication",
			Request: directory.Request{
				Base:       "cn=mapping tree,cn=config",
				Scope:      directory.ScopeSub,
				Filter:     "(objectClass=nsds5replicationagreement)",
				Attributes: []string{attrReplicaHost, attrUpdateStatus},
			},
			Kind: KindReplication,
		},
	}
}
