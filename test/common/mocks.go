// Package common provides shared test infrastructure
package common

import (
	"context"
	"errors"
	"sync"

	"github.com/bobmcallan/sentinel/internal/interfaces"
	"github.com/bobmcallan/sentinel/internal/models"
)

// ErrBackendDown is the default failure returned by a failing mock.
var ErrBackendDown = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

// MockSentinelClient implements SentinelClient for testing. A non-nil Err
// fails every call; FailOn fails only the named methods.
type MockSentinelClient struct {
	mu sync.Mutex

	Err    error
	FailOn map[string]error

	Token       *models.Token
	User        *models.User
	Portfolios  []models.Portfolio
	Holdings    map[string][]models.Holding
	Assessment  *models.RiskAssessment
	Alerts      []models.Alert
	Simulation  *models.SimulationResult
	History     []models.SimulationResult
	Scenarios   []models.Scenario
	News        []models.NewsItem
	Policies    []models.PolicyUpdate
	Playbooks   []models.Playbook
	LastSimReq  *models.SimulationRequest
	LastNewsArg int

	calls map[string]int
}

// NewMockSentinelClient creates a mock that answers every call with empty data
func NewMockSentinelClient() *MockSentinelClient {
	return &MockSentinelClient{
		FailOn:   make(map[string]error),
		Holdings: make(map[string][]models.Holding),
		calls:    make(map[string]int),
	}
}

// NewFailingSentinelClient creates a mock whose every call fails
func NewFailingSentinelClient() *MockSentinelClient {
	m := NewMockSentinelClient()
	m.Err = ErrBackendDown
	return m
}

// Calls returns how many times method was invoked
func (m *MockSentinelClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockSentinelClient) record(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	if err, ok := m.FailOn[method]; ok && err != nil {
		return err
	}
	return m.Err
}

func (m *MockSentinelClient) Login(ctx context.Context, username, password string) (*models.Token, error) {
	if err := m.record("Login"); err != nil {
		return nil, err
	}
	if m.Token != nil {
		return m.Token, nil
	}
	return &models.Token{AccessToken: "mock-token", TokenType: "bearer"}, nil
}

func (m *MockSentinelClient) Logout() error {
	return m.record("Logout")
}

func (m *MockSentinelClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := m.record("Register"); err != nil {
		return nil, err
	}
	return &models.User{ID: "1", Email: req.Email, Username: req.Username, FullName: req.FullName, IsActive: true}, nil
}

func (m *MockSentinelClient) CurrentUser(ctx context.Context) (*models.User, error) {
	if err := m.record("CurrentUser"); err != nil {
		return nil, err
	}
	if m.User != nil {
		return m.User, nil
	}
	return &models.User{ID: "1", Username: "john", Email: "john@example.com", IsActive: true}, nil
}

func (m *MockSentinelClient) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	return m.record("ChangePassword")
}

func (m *MockSentinelClient) GetPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	if err := m.record("GetPortfolios"); err != nil {
		return nil, err
	}
	return m.Portfolios, nil
}

func (m *MockSentinelClient) GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	if err := m.record("GetPortfolio"); err != nil {
		return nil, err
	}
	for i := range m.Portfolios {
		if string(m.Portfolios[i].ID) == portfolioID {
			return &m.Portfolios[i], nil
		}
	}
	return nil, errors.New("Portfolio not found")
}

func (m *MockSentinelClient) CreatePortfolio(ctx context.Context, req models.PortfolioCreate) (*models.Portfolio, error) {
	if err := m.record("CreatePortfolio"); err != nil {
		return nil, err
	}
	p := models.Portfolio{Name: req.Name, Currency: req.Currency, TotalValue: models.Float(req.TotalValue)}
	m.Portfolios = append(m.Portfolios, p)
	return &p, nil
}

func (m *MockSentinelClient) GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	if err := m.record("GetHoldings"); err != nil {
		return nil, err
	}
	return m.Holdings[portfolioID], nil
}

func (m *MockSentinelClient) GetRiskAssessment(ctx context.Context, portfolioID string) (*models.RiskAssessment, error) {
	if err := m.record("GetRiskAssessment"); err != nil {
		return nil, err
	}
	if m.Assessment != nil {
		return m.Assessment, nil
	}
	return &models.RiskAssessment{PortfolioID: models.ID(portfolioID)}, nil
}

func (m *MockSentinelClient) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	if err := m.record("GetAlerts"); err != nil {
		return nil, err
	}
	return m.Alerts, nil
}

func (m *MockSentinelClient) TriggerRiskScan(ctx context.Context) error {
	return m.record("TriggerRiskScan")
}

func (m *MockSentinelClient) RunSimulation(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error) {
	m.mu.Lock()
	m.LastSimReq = &req
	m.mu.Unlock()
	if err := m.record("RunSimulation"); err != nil {
		return nil, err
	}
	return m.Simulation, nil
}

func (m *MockSentinelClient) GetSimulationHistory(ctx context.Context) ([]models.SimulationResult, error) {
	if err := m.record("GetSimulationHistory"); err != nil {
		return nil, err
	}
	return m.History, nil
}

func (m *MockSentinelClient) GetScenarios(ctx context.Context) ([]models.Scenario, error) {
	if err := m.record("GetScenarios"); err != nil {
		return nil, err
	}
	return m.Scenarios, nil
}

func (m *MockSentinelClient) GetNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	m.mu.Lock()
	m.LastNewsArg = limit
	m.mu.Unlock()
	if err := m.record("GetNews"); err != nil {
		return nil, err
	}
	if limit > 0 && len(m.News) > limit {
		return m.News[:limit], nil
	}
	return m.News, nil
}

func (m *MockSentinelClient) GetPolicyUpdates(ctx context.Context) ([]models.PolicyUpdate, error) {
	if err := m.record("GetPolicyUpdates"); err != nil {
		return nil, err
	}
	return m.Policies, nil
}

func (m *MockSentinelClient) GetPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	if err := m.record("GetPlaybooks"); err != nil {
		return nil, err
	}
	return m.Playbooks, nil
}

func (m *MockSentinelClient) GetPlaybook(ctx context.Context, playbookID string) (*models.Playbook, error) {
	if err := m.record("GetPlaybook"); err != nil {
		return nil, err
	}
	for i := range m.Playbooks {
		if string(m.Playbooks[i].ID) == playbookID {
			return &m.Playbooks[i], nil
		}
	}
	return nil, errors.New("Playbook not found")
}

func (m *MockSentinelClient) GeneratePlaybook(ctx context.Context) (*models.Playbook, error) {
	if err := m.record("GeneratePlaybook"); err != nil {
		return nil, err
	}
	if len(m.Playbooks) > 0 {
		return &m.Playbooks[0], nil
	}
	return &models.Playbook{ID: "generated", Title: "Your AI Defense Plan"}, nil
}

// Ensure mock implements SentinelClient
var _ interfaces.SentinelClient = (*MockSentinelClient)(nil)
