package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/FakeOS/backend/internal/api/http"
	"github.com/GriffinCanCode/FakeOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/FakeOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/profile"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FakeOS/backend/internal/infrastructure/tracing"
)

// DesktopPath is where the WebSocket endpoint is mounted
const DesktopPath = "/desktop"

// Server wraps the HTTP server and dependencies
type Server struct {
	handler   http.Handler
	http      *http.Server
	wsHandler *ws.Handler
	sessions  *desktop.Registry
	tracer    *tracing.Tracer
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	registry  *prometheus.Registry
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing FakeOS desktop server",
		zap.String("port", cfg.Server.Port),
		zap.Int("max_sessions", cfg.Desktop.MaxSessions),
	)

	seed := profile.Default()
	if cfg.Desktop.ProfilePath != "" {
		loaded, err := profile.Load(cfg.Desktop.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load desktop profile: %w", err)
		}
		seed = loaded
	}
	logger.Info("Desktop profile loaded",
		zap.String("profile", seed.Name),
		zap.Int("files", len(seed.Files)),
	)

	// Initialize metrics first (needed by other components)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	tracer := tracing.New("fakeos-backend", logger.Component("tracing"))

	factory := desktop.NewFactory(seed, logger.Component("desktop")).
		WithViewport(window.Size{Width: cfg.Desktop.ViewportWidth, Height: cfg.Desktop.ViewportHeight}).
		WithRecorder(metrics)
	sessions := desktop.NewRegistry(cfg.Desktop.MaxSessions)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(factory, sessions, metrics)
	wsHandler := ws.NewHandler(factory, sessions, metrics, cfg.WebSocket, logger.Component("ws"))

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/profile", handlers.Profile)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/metrics/json", handlers.GetMetrics)
	router.GET(DesktopPath, wsHandler.HandleConnection)

	handler, err := compress(router)
	if err != nil {
		return nil, err
	}

	logger.Info("Server initialized successfully")

	return &Server{
		handler: handler,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		wsHandler: wsHandler,
		sessions:  sessions,
		tracer:    tracer,
		logger:    logger,
		metrics:   metrics,
		registry:  registry,
	}, nil
}

// compress gzips HTTP responses. The WebSocket endpoint bypasses the
// wrapper so the upgrade can hijack the connection.
func compress(router *gin.Engine) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(
		gzhttp.MinSize(512),
		gzhttp.ContentTypes([]string{"application/json", "text/plain", "text/html"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(DesktopPath, router)
	mux.Handle("/", wrap(router))
	return mux, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", l.Addr().String()))

	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run listens on the configured address and serves until Shutdown
func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(l)
}

// Shutdown closes every desktop session, then drains HTTP requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...",
		zap.Int("sessions", s.sessions.Count()),
	)

	// Hijacked WebSocket connections are not tracked by http.Server
	s.wsHandler.Close()

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()

	// Sync logger before exit
	s.logger.Sync()

	return err
}
