package config

import "github.com/kelseyhightower/envconfig"

// Env holds environment overrides, processed with the REPLICHECK_ prefix.
// The bind password is the main use case: it keeps the credential out of
// flags, config files, and process listings.
type Env struct {
	Domain       string `envconfig:"DOMAIN"`
	Suffix       string `envconfig:"SUFFIX"`
	BindDN       string `envconfig:"BIND_DN"`
	BindPassword string `envconfig:"BIND_PW"`
	PasswordFile string `envconfig:"PASSWORD_FILE"`
}

// FromEnv reads the REPLICHECK_* environment overrides.
func FromEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process("replicheck", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Apply copies non-empty environment values onto unset config fields.
// Explicit config always wins over the environment.
func (e *Env) Apply(cfg *Config) {
	if cfg.Domain == "" {
		cfg.Domain = e.Domain
	}
	if cfg.Suffix == "" {
		cfg.Suffix = e.Suffix
	}
	if cfg.BindDN == "" {
		cfg.BindDN = e.BindDN
	}
	if cfg.BindPassword == "" {
		cfg.BindPassword = e.BindPassword
	}
	if cfg.PasswordFile == "" {
		cfg.PasswordFile = e.PasswordFile
	}
}
