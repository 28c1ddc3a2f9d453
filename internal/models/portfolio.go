package models

import (
	"math"
	"strings"
)

// Portfolio is a user's portfolio summary.
type Portfolio struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TotalValue  Float     `json:"total_value"`
	Currency    string    `json:"currency"`
	RiskScore   Float     `json:"risk_score"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

func (p Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("portfolio", "name", "required")
	}
	if math.IsNaN(float64(p.TotalValue)) || math.IsInf(float64(p.TotalValue), 0) {
		return invalid("portfolio", "total_value", "must be finite")
	}
	return nil
}

// PortfolioCreate is the JSON body for creating a portfolio.
type PortfolioCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Currency    string  `json:"currency"`
	TotalValue  float64 `json:"total_value,omitempty"`
}

func (p PortfolioCreate) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("portfolio", "name", "required")
	}
	if len(p.Currency) != 3 {
		return invalid("portfolio", "currency", "must be a 3-letter code")
	}
	return nil
}

// Holding is one position within a portfolio.
type Holding struct {
	ID           ID     `json:"id"`
	PortfolioID  ID     `json:"portfolio_id"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name,omitempty"`
	AssetType    string `json:"asset_type,omitempty"`
	Quantity     Float  `json:"quantity"`
	AveragePrice Float  `json:"average_price"`
	CurrentPrice Float  `json:"current_price"`
	MarketValue  Float  `json:"market_value"`
}

func (h Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return invalid("holding", "symbol", "required")
	}
	return nil
}
