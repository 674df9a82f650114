package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

type Service struct {
	conf Config
	eval Evaluator

	router *gin.Engine
	server *http.Server

	mcpServer           *server.MCPServer
	mcpSSEServer        *server.SSEServer
	mcpStreamableServer *server.StreamableHTTPServer
}

type Config interface {
	GetHTTPAddr() string
}

// Evaluator produces a fresh report on every call.
type Evaluator interface {
	Evaluate(ctx context.Context) *sip.Report
}

func NewService(conf Config, eval Evaluator) *Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("Failed to set trusted proxies")
	}

	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health"),
		corsMiddleware(),
	)

	s := &Service{
		conf:   conf,
		eval:   eval,
		router: router,
	}

	s.initMCPServer()
	s.initRouter()
	return s
}

// Start binds the listen address and serves in the background. A bind
// failure is returned; later serve errors are logged.
func (s *Service) Start() error {

	ln, err := net.Listen("tcp", s.conf.GetHTTPAddr())
	if err != nil {
		return errors.HTTP("listen "+s.conf.GetHTTPAddr(), err)
	}

	s.server = &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Err(err).Msg("Failed to serve HTTP")
		}
	}()

	log.Info().Msg("Starting HTTP server on " + s.server.Addr)

	return nil
}

// Addr is the bound address once Start has succeeded.
func (s *Service) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr
}

func (s *Service) Stop() error {

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Debug().Err(err).Msg("Failed to shutdown HTTP server")
		return nil
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Service) GetRouter() *gin.Engine {
	return s.router
}
