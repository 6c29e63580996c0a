package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/mhagen/ordercast/internal/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(apperrors.Middleware())

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	submitLimiter := newRateLimiter(s.config.SubmitRatePerSecond, s.config.SubmitBurst)
	s.echo.POST("/orders", s.handleCreateOrder, submitLimiter)
	s.echo.GET("/orders", s.handleListOrders)
	s.echo.GET("/ws/orders", s.handleOrdersWebSocket)

	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/create-order", s.handleCreateOrderPage)
	s.echo.POST("/submit-order", s.handleSubmitOrderForm, submitLimiter)
	s.echo.GET("/view-orders", s.handleViewOrdersPage)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
