package server

import (
	"context"
	"errors"
	"html/template"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/mhagen/ordercast/internal/broadcast"
	"github.com/mhagen/ordercast/internal/config"
	"github.com/mhagen/ordercast/internal/domain"
	"github.com/mhagen/ordercast/web"
)

// --- Mock implementations ---

type mockOrderService struct {
	submitFn     func(ctx context.Context, candidate domain.Order) (domain.Order, error)
	listOrdersFn func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockOrderService) Submit(ctx context.Context, candidate domain.Order) (domain.Order, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, candidate)
	}
	return candidate, nil
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx)
	}
	return []domain.Order{}, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app domain.OrderService, opts ...func(*Server)) *Server {
	t.Helper()

	templates, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	hub := broadcast.NewHub(clockwork.NewRealClock(), 100)
	t.Cleanup(hub.Stop)

	srv := &Server{
		echo: e,
		config: &config.Config{
			Port:                "0",
			SubmitRatePerSecond: 1000,
			SubmitBurst:         1000,
		},
		app:       app,
		hub:       hub,
		templates: templates,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func healthOK(_ context.Context) error { return nil }

func healthErr(msg string) func(context.Context) error {
	return func(_ context.Context) error { return errors.New(msg) }
}
