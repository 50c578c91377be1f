package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"redline/internal/domain"
)

func TestDecodeLeaseExtraction_AllFields(t *testing.T) {
	data := json.RawMessage(`{
		"tenant_name": "Acme Corp",
		"monthly_rent": "$12,500",
		"security_deposit": "$25,000",
		"risk_score": 7,
		"risk_flags": ["Gross-Up clause", "Transferred deposit"]
	}`)

	ex := domain.DecodeLeaseExtraction(data)
	assert.Equal(t, "Acme Corp", ex.TenantName)
	assert.Equal(t, "$12,500", ex.MonthlyRent)
	assert.Equal(t, "$25,000", ex.SecurityDeposit)
	assert.Equal(t, domain.RiskScore(7), ex.RiskScore)
	assert.Equal(t, domain.RiskFlags{"Gross-Up clause", "Transferred deposit"}, ex.RiskFlags)
}

func TestDecodeLeaseExtraction_MissingFieldsKeepZeroValues(t *testing.T) {
	ex := domain.DecodeLeaseExtraction(json.RawMessage(`{"tenant_name": "Acme Corp"}`))
	assert.Equal(t, "Acme Corp", ex.TenantName)
	assert.Empty(t, ex.MonthlyRent)
	assert.Equal(t, domain.RiskScore(0), ex.RiskScore)
	assert.Empty(t, ex.RiskFlags)
}

func TestDecodeLeaseExtraction_UnknownFieldsIgnored(t *testing.T) {
	ex := domain.DecodeLeaseExtraction(json.RawMessage(`{"tenant_name": "Acme Corp", "landlord": "Foo LLC"}`))
	assert.Equal(t, "Acme Corp", ex.TenantName)
}

func TestDecodeLeaseExtraction_Empty(t *testing.T) {
	ex := domain.DecodeLeaseExtraction(nil)
	assert.NotNil(t, ex)
	assert.Empty(t, ex.TenantName)
}

func TestRiskScore_UnmarshalVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want domain.RiskScore
	}{
		{"number", `{"risk_score": 7}`, 7},
		{"quoted string", `{"risk_score": "7"}`, 7},
		{"float", `{"risk_score": 7.8}`, 7},
		{"quoted float", `{"risk_score": "7.8"}`, 7},
		{"null", `{"risk_score": null}`, 0},
		{"garbage", `{"risk_score": "high"}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := domain.DecodeLeaseExtraction(json.RawMessage(tc.in))
			assert.Equal(t, tc.want, ex.RiskScore)
		})
	}
}

func TestRiskFlags_UnmarshalVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want domain.RiskFlags
	}{
		{"array", `{"risk_flags": ["A", "B"]}`, domain.RiskFlags{"A", "B"}},
		{"single string", `{"risk_flags": "Gross-Up clause"}`, domain.RiskFlags{"Gross-Up clause"}},
		{"empty string", `{"risk_flags": ""}`, nil},
		{"null", `{"risk_flags": null}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := domain.DecodeLeaseExtraction(json.RawMessage(tc.in))
			assert.Equal(t, tc.want, ex.RiskFlags)
		})
	}
}

func TestRiskFlags_Summary(t *testing.T) {
	assert.Equal(t, "A, B", domain.RiskFlags{"A", "B"}.Summary())
	assert.Equal(t, "A", domain.RiskFlags{"A"}.Summary())
	assert.Equal(t, "", domain.RiskFlags(nil).Summary())
}

func TestClientAccount_Remaining(t *testing.T) {
	assert.Equal(t, 3, (&domain.ClientAccount{UsageLimit: 5, Used: 2}).Remaining())
	assert.Equal(t, 0, (&domain.ClientAccount{UsageLimit: 5, Used: 5}).Remaining())
	assert.Equal(t, 0, (&domain.ClientAccount{UsageLimit: 5, Used: 7}).Remaining())
}
