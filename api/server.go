package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquifer-dex/aquifer/x/amm/keeper"
	"github.com/aquifer-dex/aquifer/x/amm/types"
)

// Server exposes the router operations over HTTP
type Server struct {
	router    *gin.Engine
	keeper    *keeper.Keeper
	msgServer types.MsgServer
	config    *Config
	logger    log.Logger
	httpSrv   *http.Server
}

// Config holds server configuration
type Config struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      "0.0.0.0:8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(k *keeper.Keeper, config *Config, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:    router,
		keeper:    k,
		msgServer: keeper.NewMsgServerImpl(k),
		config:    config,
		logger:    logger.With("component", "api"),
	}

	router.Use(s.requestIDMiddleware(), s.loggingMiddleware())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1")
	{
		v1.GET("/pools", s.handleListPools)
		v1.GET("/pools/:id", s.handleGetPool)
		v1.GET("/reserves", s.handleGetReserves)
		v1.GET("/quote", s.handleQuote)
		v1.GET("/price", s.handleSpotPrice)
		v1.GET("/positions/:holder", s.handleGetPosition)

		v1.POST("/liquidity/add", s.handleAddLiquidity)
		v1.POST("/liquidity/remove", s.handleRemoveLiquidity)
		v1.POST("/swap", s.handleSwap)
	}
}

// Handler returns the underlying HTTP handler. Test hook.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then drains connections within
// the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", s.config.ListenAddr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("api server shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	report, broken := s.keeper.AllInvariants(c.Request.Context())
	if broken {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "invariant_broken", "report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pools": s.keeper.PoolCount()})
}

// writeError maps engine sentinel errors onto HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, types.ErrPoolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvariantViolation), errors.Is(err, types.ErrInvalidPoolState):
		status = http.StatusInternalServerError
	case errors.Is(err, types.ErrLedgerFailure):
		status = http.StatusBadGateway
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
