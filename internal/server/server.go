package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"live-sports-service/internal/config"
	"live-sports-service/internal/dispatch"
	httpserver "live-sports-service/internal/http"
	"live-sports-service/internal/http/handlers"
	"live-sports-service/internal/metrics"
	"live-sports-service/internal/sports"
	"live-sports-service/internal/timeutil"
	"live-sports-service/internal/upstream"
)

var metricsSetup = metrics.Setup

// Server owns the HTTP listener, the optional metrics listener, and
// the dispatcher wiring behind them.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	registry      *sports.Registry
	dispatcher    *dispatch.Dispatcher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with default upstream-client wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	client := upstream.NewClient(upstream.Config{
		APIKey:  cfg.APIKey,
		Timeout: cfg.UpstreamTimeout,
	})
	return newServerWithFetcher(cfg, logger, client)
}

func newServerWithFetcher(cfg config.Config, logger *slog.Logger, fetcher dispatch.Fetcher) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	loc := timeutil.ResolveLocation(cfg.Timezone)
	registry := sports.NewRegistry(cfg.DefaultSport, loc, nil)
	dispatcher := dispatch.New(registry, fetcher, logger, recorder)

	handler := handlers.NewHandler(dispatcher, logger, readyCheck(cfg))
	router := httpserver.NewRouter(handler, logger, recorder, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		registry:      registry,
		dispatcher:    dispatcher,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// readyCheck gates the readiness probe: without the upstream credential
// every query would fail, so the instance should not receive traffic.
func readyCheck(cfg config.Config) func() error {
	return func() error {
		if cfg.APIKey == "" {
			return errors.New("upstream API key is not configured")
		}
		return nil
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recorder, promHandler, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}
	if promHandler == nil {
		return recorder, nil, shutdown
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promHandler)
	srv := &http.Server{
		Addr:        ":" + cfg.Metrics.Port,
		Handler:     mux,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}
	return recorder, netHTTPServer{srv: srv}, shutdown
}

// Run starts the listeners, then waits for context cancellation to
// shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onErr func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Error(name+" server failed", "error", err)
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}
