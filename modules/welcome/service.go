package welcome

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/guarzo/welcome/common"
)

// Service is the higher-level contract of the cached welcome-message
// fetcher: cache-or-fetch, a liveness probe, and a cache reset.
type Service interface {
	// GetMessage returns the welcome message, serving it from the cache
	// while fresh unless force is set. It may fail with a
	// *common.TimeoutError or a *common.HTTPError.
	GetMessage(ctx context.Context, force bool) (string, error)
	// HealthCheck probes the endpoint directly, bypassing the cache.
	// It never returns an error; failures are captured in the result.
	HealthCheck(ctx context.Context) HealthStatus
	// ClearCache unconditionally empties the cache slot.
	ClearCache()
}

// HealthStatus is the result of a health probe.
type HealthStatus struct {
	OK       bool   `json:"ok"`
	Info     string `json:"info"`
	Endpoint string `json:"endpoint"`
}

type service struct {
	client   Client
	cache    *common.CacheSlot
	ttl      time.Duration
	endpoint string
	log      zerolog.Logger
}

// NewService constructs a Service from an effective configuration. The
// cache slot starts empty and lives as long as the service instance.
func NewService(cfg common.Config, httpClient common.HttpClient, log zerolog.Logger) Service {
	cfg = cfg.Merge()
	return &service{
		client:   NewClient(cfg.EndpointURL, cfg.Timeout, httpClient, log),
		cache:    &common.CacheSlot{},
		ttl:      cfg.CacheTTL,
		endpoint: cfg.EndpointURL,
		log:      log,
	}
}

// NewServiceWithClient wires a Service over an existing Client, which is
// mainly useful in tests.
func NewServiceWithClient(client Client, cfg common.Config, log zerolog.Logger) Service {
	cfg = cfg.Merge()
	return &service{
		client:   client,
		cache:    &common.CacheSlot{},
		ttl:      cfg.CacheTTL,
		endpoint: cfg.EndpointURL,
		log:      log,
	}
}

func (s *service) GetMessage(ctx context.Context, force bool) (string, error) {
	if !force {
		if msg, ok := s.cache.Get(); ok {
			s.log.Debug().Str("message", msg).Msg("cache hit")
			return msg, nil
		}
	}

	msg, err := s.client.FetchMessage(ctx)
	if err != nil {
		// the slot keeps its prior state; the caller decides whether to retry
		return "", err
	}

	s.cache.Set(msg, s.ttl)
	return msg, nil
}

func (s *service) HealthCheck(ctx context.Context) HealthStatus {
	if err := s.client.Probe(ctx); err != nil {
		info := err.Error()
		if info == "" {
			info = "unreachable"
		}
		return HealthStatus{OK: false, Info: info, Endpoint: s.endpoint}
	}
	return HealthStatus{OK: true, Info: "up", Endpoint: s.endpoint}
}

func (s *service) ClearCache() {
	s.cache.Clear()
}

// NewDefaultService builds a Service against cfg with a freshly wrapped
// standard HTTP client. Convenience for embedding applications that do not
// need a custom transport.
func NewDefaultService(cfg common.Config, log zerolog.Logger) Service {
	httpClient := common.NewHTTPClient("welcome-service", &http.Client{})
	return NewService(cfg, httpClient, log)
}
