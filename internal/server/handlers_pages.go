package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhagen/ordercast/internal/domain"
	apperrors "github.com/mhagen/ordercast/internal/errors"
)

func (s *Server) handleIndex(c echo.Context) error {
	return s.renderTemplate(c, "index.html", nil)
}

func (s *Server) handleCreateOrderPage(c echo.Context) error {
	return s.renderTemplate(c, "create_order.html", nil)
}

func (s *Server) handleViewOrdersPage(c echo.Context) error {
	orders, err := s.app.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}

	return s.renderTemplate(c, "view_orders.html", map[string]any{"Orders": orders})
}

func (s *Server) handleSubmitOrderForm(c echo.Context) error {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return apperrors.ValidationError("price must be a number").WithField("price", c.FormValue("price"))
	}

	quantity, err := strconv.ParseInt(c.FormValue("quantity"), 10, 64)
	if err != nil {
		return apperrors.ValidationError("quantity must be an integer").WithField("quantity", c.FormValue("quantity"))
	}

	_, err = s.app.Submit(c.Request().Context(), domain.Order{
		Symbol:   c.FormValue("symbol"),
		Price:    price,
		Quantity: quantity,
		Side:     domain.Side(c.FormValue("order_type")),
	})
	if err != nil {
		return err
	}

	if err := c.Redirect(http.StatusSeeOther, "/view-orders"); err != nil {
		return fmt.Errorf("failed to send redirect: %w", err)
	}
	return nil
}
