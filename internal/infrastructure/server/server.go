// Package server wires the audit pipeline together behind a gin router.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/somalabs/soma-api/internal/api/http"
	"github.com/somalabs/soma-api/internal/api/middleware"
	"github.com/somalabs/soma-api/internal/audit"
	"github.com/somalabs/soma-api/internal/infrastructure/config"
	"github.com/somalabs/soma-api/internal/infrastructure/monitoring"
	"github.com/somalabs/soma-api/internal/infrastructure/tracing"
	"github.com/somalabs/soma-api/internal/logging"
	"github.com/somalabs/soma-api/internal/store"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	store   *store.Store
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance. A schema failure aborts
// construction: the process must not serve traffic against an unverified
// audit schema.
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing soma-api server",
		zap.String("port", cfg.Server.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	// Initialize metrics
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	// Initialize distributed tracing
	tracer := tracing.New("soma-api", logger)
	logger.Info("Distributed tracing initialized")

	// Open the audit store and ensure its schema
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	if err := st.EnsureSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	logger.Info("Audit store initialized", zap.String("path", cfg.Database.Path))

	// Audit recorder
	recorder := audit.NewRecorder(st, logger).WithMetrics(metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := apihttp.NewHandlers(recorder, st, metrics, logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/soma/:a/:b", handlers.Soma)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		store:   st,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close audit store", zap.Error(err))
		return fmt.Errorf("failed to close audit store: %w", err)
	}
	s.logger.Info("Closed audit store")

	// Sync logger before exit
	s.logger.Sync()

	return nil
}
