// passaudit estimates password strength and brute-force crack times from the
// command line, and serves the same analysis over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passwordAuditBackend/internal/config"
	"passwordAuditBackend/internal/pkg/logging"
)

// Set by the linker.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cli struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
}

// NewRootCmd builds a fresh command tree; tests use one per case.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   "passaudit",
		Short: "Password strength auditor",
		Long: `passaudit scores passwords by length and character classes,
estimates brute-force crack times for four attacker scenarios and can ask an
AI advisory service for commentary. Only the structural mask of a password
(L/U/N/S per character) ever leaves the machine.`,
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			if c.logLevel != "" {
				cfg.Log.Level = c.logLevel
			}
			logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			c.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "Path to config file (YAML)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		c.newAnalyzeCmd(),
		c.newAuditCmd(),
		c.newScenariosCmd(),
		c.newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skips config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "passaudit version %s (commit %s, built %s)\n", version, gitCommit, buildDate)
		},
	}
}
