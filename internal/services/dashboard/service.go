// Package dashboard provides the Sentinel dashboard sections
package dashboard

import (
	"time"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/interfaces"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

// DefaultNewsLimit is how many stories the news section requests.
const DefaultNewsLimit = 3

// Service loads dashboard sections, each with its own fetch-or-fallback.
type Service struct {
	client    interfaces.SentinelClient
	logger    *common.Logger
	now       func() time.Time
	newsLimit int
}

// Option configures the service
type Option func(*Service)

// WithClock overrides time.Now for fallback timestamps and age formatting
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNewsLimit sets the news page size; values <= 0 keep the default
func WithNewsLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.newsLimit = limit
		}
	}
}

// NewService creates a new dashboard service
func NewService(client interfaces.SentinelClient, logger *common.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		client:    client,
		logger:    logger,
		now:       time.Now,
		newsLimit: DefaultNewsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// NewsLimit returns the configured news page size.
func (s *Service) NewsLimit() int { return s.newsLimit }

// WithNewsLimit returns a copy of the service with a different news page
// size. The copy shares the client, logger and clock.
func (s *Service) WithNewsLimit(limit int) *Service {
	c := *s
	WithNewsLimit(limit)(&c)
	return &c
}

// LoadOptions are the loader options carrying the service logger and clock.
func (s *Service) LoadOptions() []loader.Option {
	return []loader.Option{loader.WithLogger(s.logger), loader.WithClock(s.now)}
}

// Section is a loaded list with its heading text.
type Section[T any] struct {
	loader.Result[T]

	Title       string
	Description string
	EmptyText   string
}

// Empty reports whether the section should show its "no data" state.
func (s Section[T]) Empty() bool { return s.State == loader.StateEmpty }
