package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Aidin1998/pxegate/common/apiutil"
	"github.com/Aidin1998/pxegate/internal/gateway"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Response bodies of the ledger routes, sent as JSON strings
const (
	ConnectedMessage      = "Connected"
	AccountsShowedMessage = "Accounts showed"
)

// Server represents the gateway HTTP server
type Server struct {
	router     *gin.Engine
	logger     *zap.Logger
	gateway    gateway.GatewayService
	httpServer *http.Server
}

// NewServer creates a new gateway server. Only uiOrigin may call it from a
// browser.
func NewServer(logger *zap.Logger, gw gateway.GatewayService, uiOrigin string) *Server {
	server := &Server{
		logger:  logger,
		gateway: gw,
	}

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware("pxegate"))
	router.Use(apiutil.RequestIDMiddleware())
	router.Use(apiutil.MetricsMiddleware())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{uiOrigin},
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Accept", apiutil.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", apiutil.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	server.router = router
	server.registerRoutes()
	server.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

// Start serves on addr until Shutdown is called. Calling Shutdown first
// makes Start return immediately.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("Server started", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/start", s.start)
	s.router.GET("/show_accounts", s.showAccounts)

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// start handles GET /start
func (s *Server) start(c *gin.Context) {
	s.logger.Info("request start")

	if _, err := s.gateway.Connect(c.Request.Context()); err != nil {
		apiutil.WriteGenericFailure(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, ConnectedMessage)
}

// showAccounts handles GET /show_accounts
func (s *Server) showAccounts(c *gin.Context) {
	s.logger.Info("request show_accounts")

	if _, err := s.gateway.ListAccounts(c.Request.Context()); err != nil {
		apiutil.WriteGenericFailure(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, AccountsShowedMessage)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"connected": s.gateway.Connected(),
		"time":      time.Now(),
	})
}
