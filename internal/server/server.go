package server

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quickpane/quickpane/backend/internal/config"
	apihttp "github.com/quickpane/quickpane/backend/internal/http"
	"github.com/quickpane/quickpane/backend/internal/logging"
	"github.com/quickpane/quickpane/backend/internal/middleware"
	"github.com/quickpane/quickpane/backend/internal/monitoring"
	"github.com/quickpane/quickpane/backend/internal/prefs"
	"github.com/quickpane/quickpane/backend/internal/pty"
	"github.com/quickpane/quickpane/backend/internal/recovery"
	"github.com/quickpane/quickpane/backend/internal/ws"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	logger  *logging.Logger
	manager *pty.Manager
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}

	dataDir, err := resolveDataDir(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()
	manager := pty.NewManager(logger.Logger, metrics)

	prefStore, err := prefs.NewStore(dataDir, logger.Logger)
	if err != nil {
		return nil, err
	}
	recoveryStore, err := recovery.NewStore(filepath.Join(dataDir, "recovery"), logger.Logger)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(manager, prefStore, recoveryStore)
	wsHandler := ws.NewHandler(manager, logger.Logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// PTY sessions
	router.GET("/sessions", handlers.ListSessions)
	router.DELETE("/sessions/:id", handlers.KillSession)

	// Preferences
	router.GET("/preferences", handlers.GetPreferences)
	router.PUT("/preferences", handlers.SetPreferences)

	// Recovery files
	router.GET("/recovery", handlers.ListRecovery)
	router.GET("/recovery/:name", handlers.LoadRecovery)
	router.POST("/recovery/:name", handlers.SaveRecovery)
	router.DELETE("/recovery/:name", handlers.DeleteRecovery)

	// WebSocket command and event stream
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router:  router,
		cfg:     cfg,
		logger:  logger,
		manager: manager,
	}, nil
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("starting quickpane backend", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close tears down every remaining PTY session. Failures are logged by the
// manager, never propagated.
func (s *Server) Close() error {
	s.logger.Info("shutting down, killing remaining sessions",
		zap.Int("sessions", s.manager.Count()))
	return s.manager.Close()
}

// resolveDataDir picks the app data directory: the configured one, or
// <user config dir>/quickpane.
func resolveDataDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "quickpane"), nil
}
