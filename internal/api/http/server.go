// Package httpapi serves the dashboard: the embedded frontend, the JSON
// aggregate endpoints, and the operational probes.
package httpapi

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/config"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dataset"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

//go:embed static/index.html
var indexHTML []byte

// Server wraps the Fiber app and its dependencies.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger *slog.Logger
}

// New builds the dashboard server with all routes registered.
func New(cfg *config.Config, loader *dataset.Loader, metrics *observability.Metrics, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "mci-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code == fiber.StatusInternalServerError {
				logger.Error("request failed", "path", c.Path(), "error", err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestMetrics(metrics))

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.Send(indexHTML)
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "mci-dashboard"})
	})

	app.Get("/readyz", func(c *fiber.Ctx) error {
		if err := loader.Check(); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registerAPI(app, loader)

	return &Server{app: app, cfg: cfg, logger: logger}
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	s.logger.Info("dashboard listening", "addr", s.cfg.HTTPAddr)
	return s.app.Listen(s.cfg.HTTPAddr)
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestMetrics counts requests by route and status. The error is resolved
// to its eventual status code before the error handler rewrites the response.
func requestMetrics(metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		metrics.HTTPRequests.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}
