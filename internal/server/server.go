// Package server exposes the evaluation engines over HTTP.
package server

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/service"
)

// Server is the bigcalc HTTP API. It wraps an http.Server with the
// middleware chain and graceful shutdown.
type Server struct {
	factory        calc.EvaluatorFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	cache          *service.CachedService
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a Server serving the engines of factory.
//
// Parameters:
//   - factory: The factory to retrieve evaluators from.
//   - cfg: The application configuration (port, default engine, digit limit).
//   - opts: Functional options such as WithLogger or WithService.
//
// Returns:
//   - *Server: The initialized server. It does not listen until Start,
//     Run or Serve is called.
func NewServer(factory calc.EvaluatorFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewZerologAdapter(log.Logger.With().Str("component", "server").Logger()),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = s.newDefaultService()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/calculate", s.wrapWithMiddleware("/calculate", s.handleCalculate))
	mux.HandleFunc("/health", s.wrapWithMiddleware("/health", s.handleHealth))
	mux.HandleFunc("/engines", s.wrapWithMiddleware("/engines", s.handleEngines))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware("/metrics", s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	if sl, ok := s.logger.(interface{ StdLogger() *stdlog.Logger }); ok {
		s.httpServer.ErrorLog = sl.StdLogger()
	}
	return s
}

// newDefaultService builds the calculator service, wrapped in a result cache
// when cfg.CacheSize is positive.
func (s *Server) newDefaultService() service.Service {
	svc := service.NewCalculatorService(s.factory, s.cfg.MaxDigits)
	if s.cfg.CacheSize <= 0 {
		return svc
	}
	cacheCfg := service.DefaultCacheConfig()
	cacheCfg.MaxEntries = s.cfg.CacheSize
	cached, err := service.NewCachedService(svc, cacheCfg)
	if err != nil {
		s.logger.Warn("result cache disabled", logging.Err(err))
		return svc
	}
	s.cache = cached
	s.metrics.RegisterCache(cached.Stats)
	return cached
}

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(path string, handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(path, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Handler returns the server's request multiplexer with all middleware
// applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port until SIGINT or SIGTERM, then shuts
// down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run listens on the configured port until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.rateLimiter.Stop()
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.String("engine", s.defaultEngine()),
			logging.Int("max_digits", s.cfg.MaxDigits))
		s.logger.Debug("endpoints: GET /calculate?a=<int>&op=<op>&b=<int>&engine=<name>, GET /health, GET /engines, GET /metrics")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, initiating graceful shutdown")
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for in-flight requests up
// to the shutdown timeout.
func (s *Server) Shutdown() error {
	defer s.rateLimiter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

func (s *Server) defaultEngine() string {
	if s.cfg.Engine == "" || s.cfg.Engine == "all" {
		return config.DefaultEngine
	}
	return s.cfg.Engine
}
