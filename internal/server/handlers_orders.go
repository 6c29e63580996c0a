package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhagen/ordercast/internal/domain"
	apperrors "github.com/mhagen/ordercast/internal/errors"
)

type orderRequest struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Side     string  `json:"order_type"`
}

func (s *Server) handleCreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	order, err := s.app.Submit(c.Request().Context(), domain.Order{
		Symbol:   req.Symbol,
		Price:    req.Price,
		Quantity: req.Quantity,
		Side:     domain.Side(req.Side),
	})
	if err != nil {
		return err
	}

	response := map[string]any{
		"message": "Order created successfully",
		"order":   order,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListOrders(c echo.Context) error {
	orders, err := s.app.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, orders); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
