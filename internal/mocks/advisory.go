package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"passwordAuditBackend/internal/core/domain"
)

type MockAdvisoryClient struct {
	mock.Mock
}

func NewMockAdvisoryClient() *MockAdvisoryClient {
	return &MockAdvisoryClient{}
}

func (m *MockAdvisoryClient) Advise(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryReport, error) {
	args := m.Called(ctx, req)
	var report *domain.AdvisoryReport
	if r := args.Get(0); r != nil {
		report = r.(*domain.AdvisoryReport)
	}
	return report, args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func NewMockAuditService() *MockAuditService {
	return &MockAuditService{}
}

func (m *MockAuditService) Analyze(ctx context.Context, password string) domain.PasswordAnalysis {
	args := m.Called(ctx, password)
	return args.Get(0).(domain.PasswordAnalysis)
}

func (m *MockAuditService) Advise(ctx context.Context, sessionID, password string) (*domain.AdvisoryReport, error) {
	args := m.Called(ctx, sessionID, password)
	var report *domain.AdvisoryReport
	if r := args.Get(0); r != nil {
		report = r.(*domain.AdvisoryReport)
	}
	return report, args.Error(1)
}

func (m *MockAuditService) AuditBatch(ctx context.Context, passwords []string) (*domain.AuditReport, error) {
	args := m.Called(ctx, passwords)
	var report *domain.AuditReport
	if r := args.Get(0); r != nil {
		report = r.(*domain.AuditReport)
	}
	return report, args.Error(1)
}

func (m *MockAuditService) Scenarios() []domain.AttackScenario {
	return m.Called().Get(0).([]domain.AttackScenario)
}

func (m *MockAuditService) Stats() domain.ServiceStats {
	return m.Called().Get(0).(domain.ServiceStats)
}
