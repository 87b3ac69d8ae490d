package port

import (
	"context"

	"passwordAuditBackend/internal/core/domain"
)

type AuditService interface {
	Analyze(ctx context.Context, password string) domain.PasswordAnalysis
	Advise(ctx context.Context, sessionID, password string) (*domain.AdvisoryReport, error)
	AuditBatch(ctx context.Context, passwords []string) (*domain.AuditReport, error)
	Scenarios() []domain.AttackScenario
	Stats() domain.ServiceStats
}

// AdvisoryClient is the outbound contract to the commentary service. Requests
// carry the analysis and the structural mask only.
type AdvisoryClient interface {
	Advise(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryReport, error)
}

// StatsCollector receives counters from the service.
type StatsCollector interface {
	RecordAnalysis(level domain.StrengthLevel)
	RecordAdvisory(err error)
	Snapshot() domain.ServiceStats
}
