package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bianoble/replicheck/internal/config"
	"github.com/bianoble/replicheck/internal/directory"
)

// resolveConfig merges the config file, environment overrides, and flags
// into a validated Config. Precedence: flags > file > environment.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}

	if _, err := os.Stat(configPath); err == nil {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if cmd.Flags().Changed("config") {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	applyFlags(cmd, cfg)

	env, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	env.Apply(cfg)

	cfg.ApplyDefaults()

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags over the file values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("server") {
		cfg.Servers = splitServers(flagServers)
	}
	if f.Changed("domain") {
		cfg.Domain = flagDomain
	}
	if f.Changed("suffix") {
		cfg.Suffix = flagSuffix
	}
	if f.Changed("binddn") {
		cfg.BindDN = flagBindDN
	}
	if f.Changed("bindpw") {
		cfg.BindPassword = flagBindPW
	}
	if f.Changed("password-file") {
		cfg.PasswordFile = flagPWFile
	}
	if f.Changed("port") {
		cfg.Port = flagPort
	}
	if f.Changed("starttls") {
		cfg.StartTLS = flagStartTLS
	}
	if f.Changed("nagios") {
		cfg.Nagios = flagNagios
	}
	if f.Changed("warning") {
		cfg.Warning = flagWarning
	}
	if f.Changed("critical") {
		cfg.Critical = flagCritical
	}
	if f.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
}

// splitServers flattens repeated and comma-separated server flags.
func splitServers(raw []string) []string {
	var servers []string
	for _, item := range raw {
		for _, s := range strings.Split(item, ",") {
			if s = strings.TrimSpace(s); s != "" {
				servers = append(servers, s)
			}
		}
	}
	return servers
}

// resolvePassword fills the bind password from its sources in order:
// explicit value (flag, file config, or environment), password file,
// then an interactive prompt.
func resolvePassword(cfg *config.Config) error {
	if cfg.BindPassword != "" {
		return nil
	}
	if cfg.PasswordFile != "" {
		data, err := os.ReadFile(cfg.PasswordFile)
		if err != nil {
			return fmt.Errorf("reading password file %s: %w", cfg.PasswordFile, err)
		}
		cfg.BindPassword = strings.TrimRight(string(data), "\r\n")
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("no bind password: supply --bindpw, --password-file, or REPLICHECK_BIND_PW")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", cfg.BindDN)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	cfg.BindPassword = string(pw)
	return nil
}

// preflight binds once to every server in parallel. Individual failures
// are reported and tolerated; failing every server is fatal.
func preflight(ctx context.Context, client *directory.Client, servers []config.Server) error {
	errs := make([]error, len(servers))
	var wg sync.WaitGroup
	for i, srv := range servers {
		wg.Add(1)
		go func(i int, srv config.Server) {
			defer wg.Done()
			errs[i] = client.Ping(ctx, srv.Host)
		}(i, srv)
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			errorf("bind to %s failed: %v", servers[i].Host, err)
		}
	}
	if failed == len(servers) {
		return fmt.Errorf("bind failed on all %d servers", len(servers))
	}
	return nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	}
}
