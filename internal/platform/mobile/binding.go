package mobile

import (
	"context"

	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/port"
)

type MobileBinding struct {
	auditService port.AuditService
}

func NewMobileBinding(svc port.AuditService) *MobileBinding {
	return &MobileBinding{auditService: svc}
}

type AnalyzeResult struct {
	domain.PasswordAnalysis
	StrengthLabel string `json:"strengthLabel"`
	Mask          string `json:"mask"`
	Combinations  string `json:"combinations"`
}

// For iOS/Android: results cross the bridge as JSON strings.
func (m *MobileBinding) Analyze(password string) string {
	result := m.auditService.Analyze(context.Background(), password)
	return createSuccessResponse(AnalyzeResult{
		PasswordAnalysis: result,
		StrengthLabel:    result.Strength.Label(),
		Mask:             analysis.StructuralMask(password),
		Combinations:     analysis.CombinationsHint(result),
	})
}

func (m *MobileBinding) Advise(sessionID, password string) string {
	report, err := m.auditService.Advise(context.Background(), sessionID, password)
	if err != nil {
		return createErrorResponse(err)
	}
	return createSuccessResponse(report)
}

func (m *MobileBinding) Scenarios() string {
	return createSuccessResponse(m.auditService.Scenarios())
}
