// Package interfaces defines service contracts for Sentinel
package interfaces

import (
	"context"

	"github.com/bobmcallan/sentinel/internal/models"
)

// AuthClient covers the account endpoints
type AuthClient interface {
	// Login exchanges credentials for a bearer token and stores it in the session
	Login(ctx context.Context, username, password string) (*models.Token, error)

	// Logout drops the session token
	Logout() error

	// Register creates a new account
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	// CurrentUser returns the account the session token belongs to
	CurrentUser(ctx context.Context) (*models.User, error)

	// ChangePassword updates the current account's password
	ChangePassword(ctx context.Context, req models.PasswordChange) error
}

// SentinelClient provides access to the Sentinel risk API
type SentinelClient interface {
	AuthClient

	GetPortfolios(ctx context.Context) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error)
	CreatePortfolio(ctx context.Context, req models.PortfolioCreate) (*models.Portfolio, error)
	GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)

	GetRiskAssessment(ctx context.Context, portfolioID string) (*models.RiskAssessment, error)
	GetAlerts(ctx context.Context) ([]models.Alert, error)
	TriggerRiskScan(ctx context.Context) error

	RunSimulation(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error)
	GetSimulationHistory(ctx context.Context) ([]models.SimulationResult, error)
	GetScenarios(ctx context.Context) ([]models.Scenario, error)

	// GetNews returns the latest news; limit <= 0 leaves the page size to the server
	GetNews(ctx context.Context, limit int) ([]models.NewsItem, error)
	GetPolicyUpdates(ctx context.Context) ([]models.PolicyUpdate, error)

	GetPlaybooks(ctx context.Context) ([]models.Playbook, error)
	GetPlaybook(ctx context.Context, playbookID string) (*models.Playbook, error)
	GeneratePlaybook(ctx context.Context) (*models.Playbook, error)
}
