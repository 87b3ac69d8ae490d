package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"passwordAuditBackend/internal/adapter/advisory"
	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/core/service"
	"passwordAuditBackend/internal/pkg/metrics"
	"passwordAuditBackend/internal/platform/web"
	"passwordAuditBackend/internal/port"
)

const maxLineBytes = 1 << 20

var errNoInput = errors.New("no password given")

func (c *cli) newAnalyzeCmd() *cobra.Command {
	var (
		format string
		advise bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [password]",
		Short: "Score one password and estimate its crack times",
		Long: `Score one password. Without an argument the first line of stdin is
read, which keeps the password out of shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}

			result := analysis.Analyze(password)
			out := analyzeOutput{
				PasswordAnalysis: result,
				StrengthLabel:    result.Strength.Label(),
				Mask:             analysis.StructuralMask(password),
				Combinations:     analysis.CombinationsHint(result),
			}

			if advise {
				svc := service.NewAuditService(c.advisoryClient(), nil, c.cfg.Audit)
				ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.Advisory.Timeout)
				defer cancel()
				report, err := svc.Advise(ctx, "", password)
				if err != nil {
					return err
				}
				out.Advisory = report
			}

			return writeFormatted(cmd.OutOrStdout(), format, out, func(w io.Writer) {
				renderAnalysis(w, out)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&advise, "advise", false, "Ask the advisory service for commentary (needs GEMINI_API_KEY)")
	return cmd
}

func (c *cli) newAuditCmd() *cobra.Command {
	var (
		file       string
		workers    int
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a list of passwords, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			passwords, err := readPasswords(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			auditCfg := c.cfg.Audit
			if workers > 0 {
				auditCfg.Workers = workers
			}
			svc := service.NewAuditService(nil, nil, auditCfg)

			report, err := svc.AuditBatch(cmd.Context(), passwords)
			if err != nil {
				return err
			}

			if reportPath != "" {
				reporter, err := metrics.NewFileReporter(reportPath)
				if err != nil {
					return err
				}
				if err := reporter.Write(report); err != nil {
					_ = reporter.Close()
					return err
				}
				if err := reporter.Close(); err != nil {
					return err
				}
				log.Info().Str("path", reportPath).Msg("Audit report written")
			}

			renderSummary(cmd.OutOrStdout(), report.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", `Password list, or "-" for stdin (required)`)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of analysis workers (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the full JSON report to this file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) newScenariosCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the attacker scenarios and their guess rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return writeFormatted(cmd.OutOrStdout(), format, domain.AttackScenarios, func(w io.Writer) {
				renderScenarios(w, domain.AttackScenarios)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func (c *cli) newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if port != "" {
				cfg.Server.Port = port
			}
			if cfg.Log.Level != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := metrics.NewCollector(5 * time.Second)
			collector.Start(ctx)
			defer collector.Stop()

			svc := service.NewAuditService(c.advisoryClient(), collector, cfg.Audit)
			router := web.NewRouter(web.NewWebHandler(svc), cfg.Server)

			return web.Run(ctx, web.NewServer(cfg.Server, router), cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default from config or PORT)")
	return cmd
}

// advisoryClient returns nil when no key is configured, so the service
// reports the advisory as unavailable.
func (c *cli) advisoryClient() port.AdvisoryClient {
	if !c.cfg.Advisory.AdvisoryEnabled() {
		log.Warn().Msg("No advisory API key configured, advisory disabled")
		return nil
	}
	return advisory.NewGeminiClient(c.cfg.Advisory)
}

// readLine returns the first line without its line terminator. Other
// whitespace is part of the password.
func readLine(r io.Reader) (string, error) {
	reader := bufio.NewReaderSize(r, 4096)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" && errors.Is(err, io.EOF) {
		return "", errNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPasswords skips blank lines.
func readPasswords(stdin io.Reader, path string) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open password list: %w", err)
		}
		defer f.Close()
		r = f
	}

	var passwords []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		passwords = append(passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read password list: %w", err)
	}
	return passwords, nil
}
