package check

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
)

// Agreement is one replication relationship reported by a server: the peer
// it replicates with and the normalized status of the last update.
type Agreement struct {
	Peer   string
	Status string
}

func (a Agreement) String() string {
	if a.Status == "" {
		return a.Peer
	}
	return a.Peer + " " + a.Status
}

// normalize reduces a raw payload to the check's comparable unit.
// Replication checks are handled separately via parseAgreements.
func normalize(chk Check, entries []directory.Entry) string {
	switch chk.Kind {
	case KindCount:
		return strconv.Itoa(len(entries))
	case KindFlag:
		if len(entries) > 0 {
			return "YES"
		}
		return "NO"
	case KindValue:
		if len(entries) == 0 || len(chk.Request.Attributes) == 0 {
			return ""
		}
		return entries[0].Value(chk.Request.Attributes[0])
	default:
		return ""
	}
}

// parseAgreements extracts the replication agreement records from a
// server's payload, sorted by peer so lists compare positionally.
func parseAgreements(entries []directory.Entry) []Agreement {
	ags := make([]Agreement, 0, len(entries))
	for _, e := range entries {
		host := e.Value(attrReplicaHost)
		if host == "" {
			continue
		}
		ags = append(ags, Agreement{
			Peer:   config.ShortName(host),
			Status: statusCode(e.Value(attrUpdateStatus)),
		})
	}
	sort.Slice(ags, func(i, j int) bool { return ags[i].Peer < ags[j].Peer })
	return ags
}

// statusCode reduces a last-update status line to its numeric code.
// 389-DS reports e.g. "Error (0) Replica acquired successfully: Incremental
// update succeeded"; older servers lead with the bare number. Anything
// unrecognized is kept verbatim.
func statusCode(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	if open := strings.IndexByte(status, '('); open >= 0 {
		if close := strings.IndexByte(status[open:], ')'); close > 0 {
			code := status[open+1 : open+close]
			if _, err := strconv.Atoi(code); err == nil {
				return code
			}
		}
	}
	first := status
	if i := strings.IndexByte(status, ' '); i > 0 {
		first = status[:i]
	}
	if _, err := strconv.Atoi(first); err == nil {
		return first
	}
	return status
}
