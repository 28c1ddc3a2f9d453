package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_DecodeBackendShape(t *testing.T) {
	raw := `{"id": 3, "name": "Main", "total_value": "2456789.50", "currency": "INR",
		"risk_score": null, "created_at": "2025-06-01T10:00:00", "updated_at": null}`

	var p Portfolio
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, ID("3"), p.ID)
	assert.Equal(t, Float(2456789.5), p.TotalValue)
	assert.Equal(t, Float(0), p.RiskScore)
	assert.Equal(t, 2025, p.CreatedAt.Year())
	assert.True(t, p.UpdatedAt.IsZero())
	assert.NoError(t, p.Validate())
}

func TestPortfolio_Validate(t *testing.T) {
	assert.Error(t, Portfolio{Name: "  "}.Validate())
	assert.Error(t, Portfolio{Name: "Main", TotalValue: Float(math.Inf(1))}.Validate())
	assert.Error(t, Portfolio{Name: "Main", TotalValue: Float(math.NaN())}.Validate())
	assert.NoError(t, Portfolio{Name: "Main", TotalValue: -10}.Validate())
}

func TestPortfolioCreate_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  PortfolioCreate
		ok   bool
	}{
		{"valid", PortfolioCreate{Name: "Main", Currency: "INR"}, true},
		{"missing name", PortfolioCreate{Currency: "INR"}, false},
		{"short currency", PortfolioCreate{Name: "Main", Currency: "IN"}, false},
		{"no currency", PortfolioCreate{Name: "Main"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, "portfolio", vErr.Entity)
		})
	}
}

func TestHolding_Validate(t *testing.T) {
	assert.Error(t, Holding{}.Validate())
	assert.NoError(t, Holding{Symbol: "INFY"}.Validate())
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, User{Username: "john"}.Validate())
	assert.NoError(t, User{Username: "john", RiskTolerance: RiskModerate}.Validate())
	assert.Error(t, User{}.Validate())
	assert.Error(t, User{Username: "john", RiskTolerance: "reckless"}.Validate())
}

func TestPasswordChange_Validate(t *testing.T) {
	assert.NoError(t, PasswordChange{CurrentPassword: "x", NewPassword: "longenough"}.Validate())
	assert.Error(t, PasswordChange{NewPassword: "longenough"}.Validate())
	assert.Error(t, PasswordChange{CurrentPassword: "x", NewPassword: "short"}.Validate())
}
