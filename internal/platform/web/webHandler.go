package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/port"
)

type AnalyzeRequest struct {
	Password string `json:"password"`
}

type AdvisoryRequest struct {
	Password  string `json:"password"`
	SessionID string `json:"sessionId"`
}

type AuditRequest struct {
	Passwords []string `json:"passwords"`
}

type AnalyzeResponse struct {
	domain.PasswordAnalysis
	StrengthLabel string `json:"strengthLabel"`
	Mask          string `json:"mask"`
	Combinations  string `json:"combinations"`
}

type WebHandler struct {
	auditService port.AuditService
	started      time.Time
}

func NewWebHandler(svc port.AuditService) *WebHandler {
	return &WebHandler{
		auditService: svc,
		started:      time.Now(),
	}
}

func (h *WebHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.auditService.Analyze(c.Request.Context(), req.Password)
	c.JSON(http.StatusOK, AnalyzeResponse{
		PasswordAnalysis: result,
		StrengthLabel:    result.Strength.Label(),
		Mask:             analysis.StructuralMask(req.Password),
		Combinations:     analysis.CombinationsHint(result),
	})
}

// Advise defaults the session to the client address, so one client has at
// most one advisory call in flight.
func (h *WebHandler) Advise(c *gin.Context) {
	var req AdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = c.ClientIP()
	}

	report, err := h.auditService.Advise(c.Request.Context(), req.SessionID, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *WebHandler) Audit(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.auditService.AuditBatch(c.Request.Context(), req.Passwords)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *WebHandler) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, h.auditService.Scenarios())
}

func (h *WebHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
		"stats":  h.auditService.Stats(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyPassword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrAdvisoryUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrAdvisoryCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAdvisoryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("requestId", c.GetString(requestIDKey)).Int("status", status).Msg("Request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
