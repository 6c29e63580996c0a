package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagen/ordercast/internal/domain"
)

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t, &mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Create Order")
	assert.Contains(t, rec.Body.String(), "View Orders")
}

func TestHandleCreateOrderPage(t *testing.T) {
	srv := newTestServer(t, &mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/create-order", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/submit-order"`)
}

func TestHandleViewOrdersPage(t *testing.T) {
	app := &mockOrderService{
		listOrdersFn: func(_ context.Context) ([]domain.Order, error) {
			return []domain.Order{
				{Symbol: "AAPL", Price: 187.5, Quantity: 10, Side: domain.SideBuy},
			}, nil
		},
	}
	srv := newTestServer(t, app)

	req := httptest.NewRequest(http.MethodGet, "/view-orders", nil)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAPL")
	assert.Contains(t, rec.Body.String(), "/ws/orders")
}

func TestHandleSubmitOrderForm_Redirects(t *testing.T) {
	var submitted domain.Order
	app := &mockOrderService{
		submitFn: func(_ context.Context, candidate domain.Order) (domain.Order, error) {
			submitted = candidate
			return candidate, nil
		},
	}
	srv := newTestServer(t, app)

	form := url.Values{}
	form.Set("symbol", "TSLA")
	form.Set("price", "242.80")
	form.Set("quantity", "5")
	form.Set("order_type", "sell")

	req := httptest.NewRequest(http.MethodPost, "/submit-order", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/view-orders", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, domain.Order{Symbol: "TSLA", Price: 242.80, Quantity: 5, Side: domain.SideSell}, submitted)
}

func TestHandleSubmitOrderForm_BadPrice(t *testing.T) {
	srv := newTestServer(t, &mockOrderService{})

	form := url.Values{}
	form.Set("symbol", "TSLA")
	form.Set("price", "not-a-number")
	form.Set("quantity", "5")
	form.Set("order_type", "sell")

	req := httptest.NewRequest(http.MethodPost, "/submit-order", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubmitOrderForm_BadQuantity(t *testing.T) {
	srv := newTestServer(t, &mockOrderService{})

	form := url.Values{}
	form.Set("symbol", "TSLA")
	form.Set("price", "242.80")
	form.Set("quantity", "5.5")
	form.Set("order_type", "sell")

	req := httptest.NewRequest(http.MethodPost, "/submit-order", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
