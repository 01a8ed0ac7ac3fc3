// Package worker is the HTTP delivery that receives account events pushed by Pub/Sub.
package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"funntour/config"
	"funntour/internal/delivery"
	"funntour/internal/delivery/middleware"
	"funntour/internal/delivery/worker/handler"
	"funntour/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const defaultWorkerPort = 8001

type workerServer struct {
	addr   string
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

// NewServer creates the audit worker's HTTP delivery on http.workerPort.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	port := params.Cfg.HTTP.WorkerPort
	if port == 0 {
		port = defaultWorkerPort
	}

	srv := &workerServer{
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		logger: params.Logger,
		server: NewEcho(params),
	}
	srv.server.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the worker's echo instance.
func NewEcho(params ServerParams) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ids are assigned before the access log so every line carries one.
	e.Use(
		echomiddleware.Recover(),
		middleware.NewRequestIDMiddleware(params.Logger).Process,
		middleware.NewLoggerMiddleware(params.Logger, params.Cfg).Handle,
	)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if metricsCfg := params.Cfg.Metrics; metricsCfg != nil && metricsCfg.Enabled {
		path := metricsCfg.Path
		if path == "" {
			path = "/metrics"
		}
		e.GET(path, echo.WrapHandler(promhttp.Handler()))
	}

	e.POST("/push", params.PushHandler.HandlePush)

	return e
}

// Serve blocks until the server is shut down.
func (s *workerServer) Serve(context.Context) error {
	s.logger.Info("Audit worker listening", slog.String("addr", s.addr))
	if err := s.server.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *workerServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Audit worker shutting down")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
