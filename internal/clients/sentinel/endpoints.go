package sentinel

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bobmcallan/sentinel/internal/models"
)

// GetPortfolios retrieves the user's portfolios
func (c *Client) GetPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	return getList[models.Portfolio](ctx, c, "/api/v1/portfolio/")
}

// GetPortfolio retrieves a specific portfolio by ID
func (c *Client) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	return getOne[models.Portfolio](ctx, c, "/api/v1/portfolio/"+url.PathEscape(portfolioID))
}

// CreatePortfolio creates a portfolio
func (c *Client) CreatePortfolio(ctx context.Context, req models.PortfolioCreate) (*models.Portfolio, error) {
	return postOne[models.Portfolio](ctx, c, "/api/v1/portfolio/", req)
}

// GetHoldings retrieves holdings for a portfolio
func (c *Client) GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	path := fmt.Sprintf("/api/v1/portfolio/%s/holdings", url.PathEscape(portfolioID))
	return getList[models.Holding](ctx, c, path)
}

// GetRiskAssessment retrieves the risk assessment for a portfolio
func (c *Client) GetRiskAssessment(ctx context.Context, portfolioID string) (*models.RiskAssessment, error) {
	return getOne[models.RiskAssessment](ctx, c, "/api/v1/risk/assessment/"+url.PathEscape(portfolioID))
}

// GetAlerts retrieves the user's risk alerts
func (c *Client) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	return getList[models.Alert](ctx, c, "/api/v1/risk/alerts")
}

// TriggerRiskScan asks the backend to rescan the user's portfolios
func (c *Client) TriggerRiskScan(ctx context.Context) error {
	_, err := postOne[models.Message](ctx, c, "/api/v1/risk/scan", nil)
	return err
}

// RunSimulation runs a disaster simulation
func (c *Client) RunSimulation(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error) {
	return postOne[models.SimulationResult](ctx, c, "/api/v1/simulation/run", req)
}

// GetSimulationHistory retrieves past simulation results
func (c *Client) GetSimulationHistory(ctx context.Context) ([]models.SimulationResult, error) {
	return getList[models.SimulationResult](ctx, c, "/api/v1/simulation/history")
}

// GetScenarios retrieves the predefined scenario templates
func (c *Client) GetScenarios(ctx context.Context) ([]models.Scenario, error) {
	return getList[models.Scenario](ctx, c, "/api/v1/simulation/scenarios")
}

// GetNews retrieves the latest news. limit <= 0 omits the query parameter.
func (c *Client) GetNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	path := "/api/v1/news/"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	return getList[models.NewsItem](ctx, c, path)
}

// GetPolicyUpdates retrieves tracked regulatory changes
func (c *Client) GetPolicyUpdates(ctx context.Context) ([]models.PolicyUpdate, error) {
	return getList[models.PolicyUpdate](ctx, c, "/api/v1/news/policy-updates")
}

// GetPlaybooks retrieves the user's defense playbooks
func (c *Client) GetPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	return getList[models.Playbook](ctx, c, "/api/v1/playbook/")
}

// GetPlaybook retrieves a specific playbook by ID
func (c *Client) GetPlaybook(ctx context.Context, playbookID string) (*models.Playbook, error) {
	return getOne[models.Playbook](ctx, c, "/api/v1/playbook/"+url.PathEscape(playbookID))
}

// GeneratePlaybook asks the backend to build a fresh playbook
func (c *Client) GeneratePlaybook(ctx context.Context) (*models.Playbook, error) {
	return postOne[models.Playbook](ctx, c, "/api/v1/playbook/generate", nil)
}
