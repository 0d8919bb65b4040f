package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"

	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
)

// bodyLimit leaves room for a multipart form carrying the largest allowed
// image.
const bodyLimit = "10M"

type Server struct {
	echo    *echo.Echo
	address string
	port    int
	log     ports.Logger
}

func NewServer(api *post_http.API, jwtSecret, address string, port int, log ports.Logger, metrics ports.MetricsProvider) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echo_middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics(metrics))
	e.Use(echo_middleware.Recover())
	e.Use(echo_middleware.BodyLimit(bodyLimit))

	api.RegisterPublic(e.Group("/api"))
	api.RegisterManagement(e.Group("/admin", middleware.JWTAuth(jwtSecret)))

	return &Server{
		echo:    e,
		address: address,
		port:    port,
		log:     log,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	s.log.Info("Starting HTTP server", slog.String("address", address))
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
