// Package ui serves the single demo page that drives the gateway from a
// browser. The page talks to the gateway directly; this server only hands
// it out.
package ui

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templates embed.FS

const pageTitle = "PXE gateway"

type Server struct {
	router     *gin.Engine
	logger     *zap.Logger
	gatewayURL string
	httpServer *http.Server
}

// NewServer builds the page server. gatewayURL is the base URL the page's
// buttons call.
func NewServer(logger *zap.Logger, gatewayURL string) (*Server, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router:     router,
		logger:     logger,
		gatewayURL: gatewayURL,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	router.GET("/", s.index)
	return s, nil
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":      pageTitle,
		"GatewayURL": s.gatewayURL,
	})
}

func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("UI started", zap.String("addr", ln.Addr().String()), zap.String("gateway", s.gatewayURL))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
