package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/app/auth"
	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	approunds "github.com/AlexanderWinters/the-score-card/internal/app/rounds"
	"github.com/AlexanderWinters/the-score-card/internal/app/sessions"
	"github.com/AlexanderWinters/the-score-card/internal/config"
	httpserver "github.com/AlexanderWinters/the-score-card/internal/http"
	"github.com/AlexanderWinters/the-score-card/internal/http/handlers"
	"github.com/AlexanderWinters/the-score-card/internal/http/middleware"
	"github.com/AlexanderWinters/the-score-card/internal/kvstore"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
	"github.com/AlexanderWinters/the-score-card/internal/poller"
	"github.com/AlexanderWinters/the-score-card/internal/store"
)

var (
	metricsSetup = metrics.Setup
	openDB       = store.Open
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	db            io.Closer
	services      services
	health        backgroundPoller
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// backgroundPoller abstracts the readiness poller for tests.
type backgroundPoller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

type services struct {
	courses  *appcourses.Service
	rounds   *approunds.Service
	auth     *auth.Service
	sessions *sessions.Service
}

// New opens and migrates the database, then wires services, handlers and
// the HTTP servers. Nothing listens until Run.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if cfg.Auth.InsecureKey {
		logging.Warn(logger, "using the built-in development signing key; set JWT_SECRET_KEY before exposing this service")
	}

	db, err := openDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	group, err := store.Migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !group.IsZero() {
		logging.Info(logger, "database migrated", slog.String("group", group.String()))
	}

	drafts, err := buildDrafts(cfg.Drafts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)
	svcs := buildServices(cfg, db, drafts, recorder, logger)
	dbHealth := poller.New("database", func(ctx context.Context) error {
		return store.Ping(ctx, db)
	}, logger, 0)
	httpSrv := buildHTTPServer(cfg, svcs, dbHealth.Ready, recorder, logger)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		db:            db,
		services:      svcs,
		health:        dbHealth,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, db io.Closer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		httpServer: httpSrv,
	}
}

func buildDrafts(cfg config.DraftsConfig) (kvstore.Opener, error) {
	switch cfg.Backend {
	case config.DraftsFS:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create drafts dir: %w", err)
		}
		return kvstore.NewDir(cfg.Dir), nil
	default:
		return kvstore.NewMemory(), nil
	}
}

func buildServices(cfg config.Config, db *bun.DB, drafts kvstore.Opener, recorder *metrics.Recorder, logger *slog.Logger) services {
	courseSvc := appcourses.NewService(store.NewCourses(db), recorder, logger)
	roundSvc := approunds.NewService(store.NewRounds(db), courseSvc, recorder, logger)
	tokens := auth.NewTokens(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	return services{
		courses:  courseSvc,
		rounds:   roundSvc,
		auth:     auth.NewService(store.NewUsers(db), tokens, recorder, logger),
		sessions: sessions.NewService(drafts, courseSvc, roundSvc, logger),
	}
}

func buildHTTPServer(cfg config.Config, svcs services, ready handlers.PingFunc, recorder *metrics.Recorder, logger *slog.Logger) httpServer {
	h := httpserver.Handlers{
		Health:    handlers.NewHealthHandler(ready, logger),
		Courses:   handlers.NewCourseHandler(svcs.courses, logger),
		Bootstrap: handlers.NewBootstrapHandler(svcs.courses, logger),
		Auth:      handlers.NewAuthHandler(svcs.auth, logger),
		Rounds:    handlers.NewRoundHandler(svcs.rounds, logger),
		Sessions:  handlers.NewSessionHandler(svcs.sessions, logger),
	}
	router := httpserver.NewRouter(h, httpserver.Options{
		Logger:         logger,
		Recorder:       recorder,
		Authenticator:  svcs.auth,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AuthLimiter: middleware.NewIPRateLimiter(
			middleware.PerMinute(cfg.HTTP.AuthRatePerMinute),
			cfg.HTTP.AuthBurst,
		),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the readiness poller and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if s.health != nil {
		s.health.Start(ctx)
	}
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops polling and telemetry, drains HTTP, then closes the database.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.health != nil {
		if err := s.health.Stop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "health poller stop failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logging.Error(s.logger, "database close failed", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
