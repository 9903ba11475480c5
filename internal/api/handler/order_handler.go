package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/api/metrics"
	"github.com/nourtech/storefront/internal/core/ports"
)

// OrderHandler serves /api/orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/orders. Admins see every order, customers their own.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "Order status"
// @Success      200     {array}   orderResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), p, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(orders, toOrderResponse))
}

// Create handles POST /api/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), p, toCreateOrderInput(req))
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// UpdateStatus handles PATCH /api/orders/:id.
//
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      updateOrderRequest  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}
