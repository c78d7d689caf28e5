package config

import "strings"

// ContributingChecks is the number of checks that carry an OK/FAIL verdict
// into the pass/fail tally. The replication table is rendered but does not
// contribute, so this is one less than the number of checks that run.
const ContributingChecks = 11

// Defaults applied by ApplyDefaults.
const (
	DefaultBindDN   = "cn=Directory Manager"
	DefaultPort     = 389
	DefaultWarning  = 1
	DefaultCritical = 2
)

// Config represents the replicheck.yaml configuration file. Every field can
// also be supplied (and overridden) via command-line flags, and credentials
// additionally via the environment.
type Config struct {
	Servers      []string `yaml:"servers"`
	Domain       string   `yaml:"domain"`
	Suffix       string   `yaml:"suffix,omitempty"`
	BindDN       string   `yaml:"binddn,omitempty"`
	BindPassword string   `yaml:"bindpw,omitempty"`
	PasswordFile string   `yaml:"password_file,omitempty"`
	Port         int      `yaml:"port,omitempty"`
	StartTLS     bool     `yaml:"starttls,omitempty"`
	Nagios       bool     `yaml:"nagios,omitempty"`
	Warning      int      `yaml:"warning,omitempty"`
	Critical     int      `yaml:"critical,omitempty"`
	Timeout      int      `yaml:"timeout,omitempty"` // seconds per query; 0 = wait indefinitely
}

// Server is one replica to audit. Short is the name used for column headers,
// Host the fully qualified name used on the wire.
type Server struct {
	Short string
	Host  string
}

// ApplyDefaults fills zero-valued fields with their documented defaults.
// The suffix is derived from the domain when not given explicitly.
func (c *Config) ApplyDefaults() {
	if c.BindDN == "" {
		c.BindDN = DefaultBindDN
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Warning == 0 && c.Critical == 0 {
		c.Warning = DefaultWarning
		c.Critical = DefaultCritical
	}
	if c.Suffix == "" && c.Domain != "" {
		c.Suffix = DeriveSuffix(c.Domain)
	}
}

// ServerSet expands the configured server names into the ordered server set.
// A name without a dot is treated as a short name within the domain.
func (c *Config) ServerSet() []Server {
	set := make([]Server, 0, len(c.Servers))
	for _, name := range c.Servers {
		set = append(set, Server{Short: ShortName(name), Host: ExpandFQDN(name, c.Domain)})
	}
	return set
}

// ExpandFQDN appends the domain to a short host name. Names that already
// contain a dot are returned unchanged.
func ExpandFQDN(name, domain string) string {
	if strings.Contains(name, ".") || domain == "" {
		return name
	}
	return name + "." + domain
}

// ShortName returns the first label of a host name.
func ShortName(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// DeriveSuffix converts a DNS domain into its directory suffix,
// e.g. "example.com" -> "dc=example,dc=com".
func DeriveSuffix(domain string) string {
	labels := strings.Split(strings.Trim(domain, "."), ".")
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		parts = append(parts, "dc="+l)
	}
	return strings.Join(parts, ",")
}
