package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// Client is the LDAP implementation of Querier. Each query dials, binds,
// searches, and disconnects; replicas are audited over short-lived
// connections so one stuck server never wedges a shared connection.
type Client struct {
	Port         int
	BindDN       string
	BindPassword string
	StartTLS     bool
	Timeout      time.Duration // 0 = wait indefinitely
}

// Query runs one search against the given server.
func (c *Client) Query(ctx context.Context, server string, req Request) ([]Entry, error) {
	conn, err := c.connect(ctx, server)
	if err != nil {
		return nil, &QueryError{Server: server, Base: req.Base, Err: err}
	}
	defer conn.Close()

	res, err := conn.Search(newSearchRequest(req))
	if err != nil {
		return nil, &QueryError{Server: server, Base: req.Base, Err: err}
	}

	entries := make([]Entry, 0, len(res.Entries))
	for _, raw := range res.Entries {
		e := Entry{DN: raw.DN, Attrs: make(map[string][]string, len(raw.Attributes))}
		for _, attr := range raw.Attributes {
			e.Attrs[attr.Name] = attr.Values
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Ping verifies that the server accepts the configured bind identity.
func (c *Client) Ping(ctx context.Context, server string) error {
	conn, err := c.connect(ctx, server)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (c *Client) connect(ctx context.Context, server string) (*ldap.Conn, error) {
	d := &net.Dialer{Timeout: c.Timeout}
	url := fmt.Sprintf("ldap://%s:%d", server, c.Port)

	conn, err := ldap.DialURL(url, ldap.DialWithDialer(d))
	if err != nil {
		return nil, err
	}
	if c.Timeout > 0 {
		conn.SetTimeout(c.Timeout)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remain := time.Until(deadline); remain > 0 && (c.Timeout == 0 || remain < c.Timeout) {
			conn.SetTimeout(remain)
		}
	}

	if c.StartTLS {
		if err := conn.StartTLS(&tls.Config{ServerName: server}); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	if c.BindPassword == "" {
		err = conn.UnauthenticatedBind(c.BindDN)
	} else {
		err = conn.Bind(c.BindDN, c.BindPassword)
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func newSearchRequest(req Request) *ldap.SearchRequest {
	scope := ldap.ScopeWholeSubtree
	switch req.Scope {
	case ScopeBase:
		scope = ldap.ScopeBaseObject
	case ScopeOne:
		scope = ldap.ScopeSingleLevel
	}
	filter := req.Filter
	if filter == "" {
		filter = "(objectClass=*)"
	}
	return ldap.NewSearchRequest(
		req.Base,
		scope,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		req.Attributes,
		nil,
	)
}
