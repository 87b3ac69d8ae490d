package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"passwordAuditBackend/internal/config"
	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/pkg/concurrency"
	"passwordAuditBackend/internal/pkg/metrics"
	"passwordAuditBackend/internal/port"
)

const (
	DefaultWorkers      = 4
	DefaultMaxBatchSize = 10000
	TaskTimeout         = 5 * time.Second
)

var errSuperseded = errors.New("superseded by a newer advisory request")

type AuditService struct {
	advisory     port.AdvisoryClient
	stats        port.StatsCollector
	workers      int
	maxBatchSize int

	mu       sync.Mutex
	inFlight map[string]*advisoryCall
	nextCall uint64
}

type advisoryCall struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// NewAuditService accepts a nil advisory client; Advise then reports
// ErrAdvisoryUnavailable.
func NewAuditService(advisory port.AdvisoryClient, stats port.StatsCollector, cfg config.AuditConfig) *AuditService {
	if stats == nil {
		stats = metrics.NewCollector(time.Second)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	maxBatch := cfg.MaxBatchSize
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatchSize
	}

	return &AuditService{
		advisory:     advisory,
		stats:        stats,
		workers:      workers,
		maxBatchSize: maxBatch,
		inFlight:     make(map[string]*advisoryCall),
	}
}

func (s *AuditService) Analyze(_ context.Context, password string) domain.PasswordAnalysis {
	result := analysis.Analyze(password)
	s.stats.RecordAnalysis(result.Strength)
	return result
}

// Advise sends the analysis and structural mask of password to the advisory
// client. Calls sharing a non-empty sessionID are single-flight: a newer call
// cancels the one still running, which then returns ErrAdvisoryCancelled.
func (s *AuditService) Advise(ctx context.Context, sessionID, password string) (*domain.AdvisoryReport, error) {
	if password == "" {
		return nil, domain.ErrEmptyPassword
	}
	if s.advisory == nil {
		return nil, domain.ErrAdvisoryUnavailable
	}

	req := domain.AdvisoryRequest{
		Analysis: analysis.Analyze(password),
		Mask:     analysis.StructuralMask(password),
	}

	callCtx, cancel := context.WithCancelCause(ctx)
	callID := s.register(sessionID, cancel)
	defer s.release(sessionID, callID)
	defer cancel(nil)

	report, err := s.advisory.Advise(callCtx, req)
	if err != nil {
		if errors.Is(context.Cause(callCtx), errSuperseded) {
			log.Debug().Str("session", sessionID).Msg("Advisory request superseded")
			return nil, fmt.Errorf("%w: %w", domain.ErrAdvisoryCancelled, context.Canceled)
		}
		s.stats.RecordAdvisory(err)
		log.Warn().Err(err).Int("length", req.Analysis.Length).Msg("Advisory request failed")
		return nil, err
	}

	s.stats.RecordAdvisory(nil)
	return report, nil
}

func (s *AuditService) register(sessionID string, cancel context.CancelCauseFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCall++
	if sessionID == "" {
		return s.nextCall
	}
	if prev, ok := s.inFlight[sessionID]; ok {
		prev.cancel(errSuperseded)
	}
	s.inFlight[sessionID] = &advisoryCall{id: s.nextCall, cancel: cancel}
	return s.nextCall
}

func (s *AuditService) release(sessionID string, callID uint64) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if call, ok := s.inFlight[sessionID]; ok && call.id == callID {
		delete(s.inFlight, sessionID)
	}
}

// AuditBatch analyses passwords on the worker pool. Entries keep input order
// and hold masks, not passwords.
func (s *AuditService) AuditBatch(ctx context.Context, passwords []string) (*domain.AuditReport, error) {
	if len(passwords) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d passwords, limit %d", domain.ErrBatchTooLarge, len(passwords), s.maxBatchSize)
	}

	entries := make([]domain.AuditEntry, len(passwords))
	var runErr error
	perf := metrics.CapturePerformance(func() {
		runErr = s.runBatch(ctx, passwords, entries)
	})
	if runErr != nil {
		return nil, runErr
	}

	summary := summarize(entries)
	summary.Duration = perf.Duration
	summary.AllocBytes = perf.AllocBytes

	log.Info().
		Int("total", summary.Total).
		Float64("meanScore", summary.MeanScore).
		Dur("duration", perf.Duration).
		Msg("Batch audit complete")

	return &domain.AuditReport{
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
		Summary:     summary,
	}, nil
}

func (s *AuditService) runBatch(ctx context.Context, passwords []string, entries []domain.AuditEntry) error {
	if err := ctx.Err(); err != nil || len(passwords) == 0 {
		return err
	}

	poolCtx, cancel := context.WithCancel(ctx)
	pool := concurrency.NewWorkerPool(min(s.workers, len(passwords)), len(passwords))
	pool.Start(poolCtx)
	defer func() {
		cancel()
		pool.Stop()
	}()

	for i, password := range passwords {
		i, password := i, password
		pool.Submit(concurrency.Task{
			ID:      strconv.Itoa(i),
			Index:   i,
			Timeout: TaskTimeout,
			Function: func() (domain.AuditEntry, error) {
				return domain.AuditEntry{
					Index:    i,
					Mask:     analysis.StructuralMask(password),
					Analysis: analysis.Analyze(password),
				}, nil
			},
		})
	}

	for received := 0; received < len(passwords); received++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-pool.Results():
			if r.Error != nil {
				return fmt.Errorf("audit entry %d: %w", r.Index, r.Error)
			}
			entries[r.Index] = r.Value
			s.stats.RecordAnalysis(r.Value.Analysis.Strength)
		}
	}
	return nil
}

func summarize(entries []domain.AuditEntry) domain.AuditSummary {
	summary := domain.AuditSummary{
		Total:        len(entries),
		ByStrength:   make(map[domain.StrengthLevel]int, len(domain.StrengthLevels)),
		WeakestIndex: -1,
	}
	for _, level := range domain.StrengthLevels {
		summary.ByStrength[level] = 0
	}
	if len(entries) == 0 {
		return summary
	}

	counts := lo.CountValuesBy(entries, func(e domain.AuditEntry) domain.StrengthLevel {
		return e.Analysis.Strength
	})
	for level, n := range counts {
		summary.ByStrength[level] = n
	}

	n := float64(len(entries))
	summary.MeanScore = float64(lo.SumBy(entries, func(e domain.AuditEntry) int { return e.Analysis.Score })) / n
	summary.MeanEntropy = lo.SumBy(entries, func(e domain.AuditEntry) float64 { return e.Analysis.EntropyBits }) / n
	summary.WeakestIndex = lo.MinBy(entries, func(a, b domain.AuditEntry) bool {
		return a.Analysis.Score < b.Analysis.Score
	}).Index

	return summary
}

func (s *AuditService) Scenarios() []domain.AttackScenario {
	return append([]domain.AttackScenario(nil), domain.AttackScenarios...)
}

func (s *AuditService) Stats() domain.ServiceStats {
	return s.stats.Snapshot()
}
