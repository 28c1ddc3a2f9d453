package main

import (
	"github.com/bobmcallan/sentinel/internal/clients/sentinel"
	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/interfaces"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
	"github.com/bobmcallan/sentinel/internal/session"
	"github.com/bobmcallan/sentinel/internal/storage"
)

// App holds the wired components shared by every command
type App struct {
	Config    *common.Config
	Logger    *common.Logger
	Store     *storage.FileTokenStore // nil when token persistence is disabled
	Session   *session.Session
	Client    *sentinel.Client
	Dashboard *dashboard.Service
	Styles    Styles
}

// NewApp wires the session, API client and dashboard service from config
func NewApp(config *common.Config, logger *common.Logger) *App {
	if logger == nil {
		logger = common.NewLoggerFromConfig(config.Logging)
	}

	var store interfaces.TokenStore
	var fileStore *storage.FileTokenStore
	if !config.Session.Disabled {
		fileStore = storage.NewFileTokenStore(config.Session.TokenPath, logger)
		store = fileStore
	}
	sess := session.New(store, logger)

	opts := []sentinel.ClientOption{
		sentinel.WithBaseURL(config.API.BaseURL),
		sentinel.WithLogger(logger),
		sentinel.WithRateLimit(config.API.RateLimit),
	}
	if timeout := config.API.GetTimeout(); timeout > 0 {
		opts = append(opts, sentinel.WithTimeout(timeout))
	}
	client := sentinel.NewClient(sess, opts...)

	svc := dashboard.NewService(client, logger, dashboard.WithNewsLimit(config.Dashboard.NewsLimit))

	logger.Debug().
		Str("api_url", client.BaseURL()).
		Bool("persistent", sess.Persistent()).
		Bool("authenticated", sess.HasToken()).
		Msg("App initialized")

	return &App{
		Config:    config,
		Logger:    logger,
		Store:     fileStore,
		Session:   sess,
		Client:    client,
		Dashboard: svc,
		Styles:    DefaultStyles(),
	}
}

// NewsService returns the dashboard service, or a copy with a different
// news page size when limit is positive
func (a *App) NewsService(limit int) *dashboard.Service {
	if limit <= 0 || limit == a.Dashboard.NewsLimit() {
		return a.Dashboard
	}
	return a.Dashboard.WithNewsLimit(limit)
}
