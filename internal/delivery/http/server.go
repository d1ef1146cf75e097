// Package http wires the echo server into the application lifecycle.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery"
	appmiddleware "github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/middleware"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/router"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/validator"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config              *config.Config
	Logger              *slog.Logger
	RouterParams        router.RouterParams
	ErrorMiddleware     *appmiddleware.ErrorMiddleware
	RequestIDMiddleware *appmiddleware.RequestIDMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := newEcho(params)

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

// newEcho assembles the echo instance with the middleware chain in the
// order requests traverse it: request ID first so every later log line
// carries it, then access logging, then recovery.
func newEcho(params HTTPParams) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	timeouts := params.Config.HTTP.Timeouts
	e.Server.ReadTimeout = timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = timeouts.WriteTimeout
	e.Server.IdleTimeout = timeouts.IdleTimeout

	e.Use(params.RequestIDMiddleware.Handle)
	e.Use(slogecho.New(params.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if limit := params.Config.HTTP.MaxRequestBodySize; limit != "" {
		e.Use(middleware.BodyLimit(limit))
	}

	return e
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("http server listening", slog.String("addr", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
