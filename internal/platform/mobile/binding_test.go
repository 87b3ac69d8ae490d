package mobile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tidwall/gjson"

	"passwordAuditBackend/internal/core/analysis"
	"passwordAuditBackend/internal/core/domain"
	"passwordAuditBackend/internal/mocks"
)

func TestMobileBinding_Analyze(t *testing.T) {
	svc := mocks.NewMockAuditService()
	svc.On("Analyze", mock.Anything, "Abc1!").Return(analysis.Analyze("Abc1!")).Once()

	out := NewMobileBinding(svc).Analyze("Abc1!")

	assert.True(t, gjson.Get(out, "success").Bool())
	assert.Equal(t, "ULLNS", gjson.Get(out, "data.mask").String())
	assert.Equal(t, analysis.Analyze("Abc1!").Strength.Label(), gjson.Get(out, "data.strengthLabel").String())
	assert.Equal(t, int64(5), gjson.Get(out, "data.length").Int())
	assert.False(t, gjson.Get(out, "error").Exists())
	assert.NotContains(t, out, "Abc1!")
}

func TestMobileBinding_Advise(t *testing.T) {
	svc := mocks.NewMockAuditService()
	svc.On("Advise", mock.Anything, "s", "good").Return(&domain.AdvisoryReport{Critique: "fine"}, nil).Once()
	svc.On("Advise", mock.Anything, "s", "bad").Return(nil, domain.ErrAdvisoryUnavailable).Once()
	binding := NewMobileBinding(svc)

	ok := binding.Advise("s", "good")
	assert.True(t, gjson.Get(ok, "success").Bool())
	assert.Equal(t, "fine", gjson.Get(ok, "data.critique").String())

	failed := binding.Advise("s", "bad")
	assert.False(t, gjson.Get(failed, "success").Bool())
	assert.Equal(t, domain.ErrAdvisoryUnavailable.Error(), gjson.Get(failed, "error").String())
	assert.False(t, gjson.Get(failed, "data").Exists())

	svc.AssertExpectations(t)
}

func TestCreateErrorResponse(t *testing.T) {
	out := createErrorResponse(errors.New("boom"))
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, out)
}

func TestMobileBinding_Scenarios(t *testing.T) {
	svc := mocks.NewMockAuditService()
	svc.On("Scenarios").Return(domain.AttackScenarios).Once()

	out := NewMobileBinding(svc).Scenarios()

	assert.True(t, gjson.Get(out, "success").Bool())
	assert.Equal(t, int64(4), gjson.Get(out, "data.#").Int())
	assert.Equal(t, "Online Attack", gjson.Get(out, "data.0.label").String())
}
