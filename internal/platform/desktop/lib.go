package desktop

import (
	"context"

	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/core/service"
	"passwordAuditBackend/internal/port"
)

// DesktopLib exposes the audit service to desktop shells that have no
// request context of their own.
type DesktopLib struct {
	auditService port.AuditService
	config       *Config
}

func NewDesktopLib(svc port.AuditService, cfg *Config) *DesktopLib {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &DesktopLib{
		auditService: svc,
		config:       cfg,
	}
}

// NewStandaloneLib builds its own audit service, with the worker count and
// batch limit taken from cfg. A nil advisory client disables Advise.
func NewStandaloneLib(advisory port.AdvisoryClient, cfg *Config) *DesktopLib {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return NewDesktopLib(service.NewAuditService(advisory, nil, cfg.AuditConfig()), cfg)
}

func (d *DesktopLib) Analyze(password string) domain.PasswordAnalysis {
	return d.auditService.Analyze(context.Background(), password)
}

// Advise is bounded by the configured advisory timeout.
func (d *DesktopLib) Advise(sessionID, password string) (*domain.AdvisoryReport, error) {
	ctx := context.Background()
	if d.config.AdvisoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.AdvisoryTimeout)
		defer cancel()
	}
	return d.auditService.Advise(ctx, sessionID, password)
}

func (d *DesktopLib) Audit(passwords []string) (*domain.AuditReport, error) {
	return d.auditService.AuditBatch(context.Background(), passwords)
}

func (d *DesktopLib) Scenarios() []domain.AttackScenario {
	return d.auditService.Scenarios()
}
