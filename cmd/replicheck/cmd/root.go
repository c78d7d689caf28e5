package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bianoble/replicheck/internal/audit"
	"github.com/bianoble/replicheck/internal/directory"
	"github.com/bianoble/replicheck/internal/report"
	"github.com/bianoble/replicheck/internal/workdir"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath   string
	flagServers  []string
	flagDomain   string
	flagSuffix   string
	flagBindDN   string
	flagBindPW   string
	flagPWFile   string
	flagPort     int
	flagStartTLS bool
	flagNagios   bool
	flagWarning  int
	flagCritical int
	flagTimeout  int
	verbose      bool
	quiet        bool
)

// exitCode carries the severity-derived code out of RunE.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "replicheck",
	Short: "Audit directory replicas for consistency",
	Long: `replicheck queries every replica of a directory-service cluster for a
fixed set of metrics (user, group, host, and rule counts, anonymous bind
configuration, replication conflicts and agreement health), compares the
per-server answers, and reports per-check agreement plus an aggregate
verdict. With --nagios it emits a single monitoring-plugin summary line
and exits with the matching severity code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAudit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("replicheck %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringSliceVarP(&flagServers, "server", "H", nil, "server to audit (repeatable or comma-separated)")
	f.StringVarP(&flagDomain, "domain", "d", "", "domain used to expand short server names")
	f.StringVarP(&flagSuffix, "suffix", "s", "", "directory suffix (derived from domain when empty)")
	f.StringVarP(&flagBindDN, "binddn", "D", "", "bind DN (default \"cn=Directory Manager\")")
	f.StringVarP(&flagBindPW, "bindpw", "w", "", "bind password")
	f.StringVarP(&flagPWFile, "password-file", "W", "", "file containing the bind password")
	f.IntVar(&flagPort, "port", 0, "LDAP port (default 389)")
	f.BoolVar(&flagStartTLS, "starttls", false, "negotiate StartTLS before binding")
	f.BoolVarP(&flagNagios, "nagios", "n", false, "machine-readable summary with severity exit code")
	f.IntVar(&flagWarning, "warning", 0, "failed checks at or above this level are WARNING (default 1)")
	f.IntVar(&flagCritical, "critical", 0, "failed checks at or above this level are CRITICAL (default 2)")
	f.IntVar(&flagTimeout, "timeout", 0, "per-query timeout in seconds (0 = wait indefinitely)")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "replicheck.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output, dumps raw payloads to the working directory")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if exitCode == 0 {
			exitCode = 1
		}
	}
	return exitCode
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		if flagNagios {
			exitCode = report.SeverityUnknown.Code()
		}
		return err
	}

	if err := resolvePassword(cfg); err != nil {
		return err
	}

	wd, err := workdir.New()
	if err != nil {
		return err
	}
	defer wd.Close()

	client := &directory.Client{
		Port:         cfg.Port,
		BindDN:       cfg.BindDN,
		BindPassword: cfg.BindPassword,
		StartTLS:     cfg.StartTLS,
		Timeout:      time.Duration(cfg.Timeout) * time.Second,
	}
	servers := cfg.ServerSet()

	if err := preflight(cmd.Context(), client, servers); err != nil {
		if cfg.Nagios {
			exitCode = report.SeverityUnknown.Code()
		}
		return err
	}

	dumps := wd
	if !verbose {
		dumps = nil
	}
	detail("working directory: %s", wd.Path())
	rep := audit.Run(cmd.Context(), client, servers, cfg.Suffix, dumps)

	if cfg.Nagios {
		sev := report.Decide(rep.Failed(), cfg.Warning, cfg.Critical)
		fmt.Println(report.Summary(sev, rep.Passed, rep.Total))
		exitCode = sev.Code()
		return nil
	}

	fmt.Print(report.RenderHuman(rep))
	info("%d/%d checks passed", rep.Passed, rep.Total)
	return nil
}
