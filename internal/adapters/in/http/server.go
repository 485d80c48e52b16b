// Package http exposes the storefront's REST API.
//
// It coordinates between HTTP handlers and application use cases and owns the
// mapping from the error taxonomy to status codes: validation failures are
// 400, missing objects 404, rejected status transitions 409, and transient
// storage failures 503 with the expectation that the client retries.
package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// userIDHeader identifies the shopper. Authentication itself happens at the
// gateway; by the time requests arrive here the header is trusted.
const userIDHeader = "X-User-Id"

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Server implements the REST API for carts, checkout and orders.
type Server struct {
	// Command handlers
	addCartItemHandler         commands.AddCartItemCommandHandler
	setCartItemQuantityHandler commands.SetCartItemQuantityCommandHandler
	removeCartItemHandler      commands.RemoveCartItemCommandHandler
	checkoutHandler            commands.CheckoutCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getCartHandler         queries.GetCartQueryHandler
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	setCartItemQuantityHandler commands.SetCartItemQuantityCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrdersByUserHandler queries.GetOrdersByUserQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:         addCartItemHandler,
		setCartItemQuantityHandler: setCartItemQuantityHandler,
		removeCartItemHandler:      removeCartItemHandler,
		checkoutHandler:            checkoutHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		getCartHandler:             getCartHandler,
		getOrdersByUserHandler:     getOrdersByUserHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:productId", s.SetCartItemQuantity)
	api.DELETE("/cart/items/:productId", s.RemoveCartItem)
	api.POST("/cart/checkout", s.Checkout)
	api.GET("/orders", s.GetOrders)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req AddCartItemRequest
	if err = s.bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(userID, productID, req.Quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetCartItemQuantity handles PUT /api/v1/cart/items/:productId.
func (s *Server) SetCartItemQuantity(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req SetCartItemQuantityRequest
	if err = s.bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSetCartItemQuantityCommand(userID, productID, req.Quantity)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.setCartItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(userID, productID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/cart/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req CheckoutRequest
	if err = s.bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		if orderID, err = kernel.UUIDFromString(req.OrderID); err != nil {
			return s.writeError(ctx, err)
		}
	}

	cmd, err := commands.NewCheckoutCommand(
		orderID,
		userID,
		order.CustomerInfo{Name: req.Customer.Name, Phone: req.Customer.Phone, Address: req.Customer.Address},
		order.DeliveryWindow{Date: req.Delivery.Date, Time: req.Delivery.Time},
		req.PaymentMethod,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.checkoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		OrderID:     orderID.String(),
		OrderNumber: order.NewOrderNumber(orderID),
	})
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrdersByUserQuery(userID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.getOrdersByUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status. The identity
// header carries the staff member triggering the transition.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := s.userID(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err = s.bind(ctx, &req); err != nil {
		return s.writeError(ctx, err)
	}
	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}
	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ChangeOrderStatusResponse{
		OrderID:         updated.ID().String(),
		OrderNumber:     updated.OrderNumber(),
		Status:          updated.Status().String(),
		StatusUpdatedAt: updated.StatusUpdatedAt(),
	})
}

// userID resolves the caller's identity from the gateway header, falling back
// to the userId query parameter kept for older clients.
func (s *Server) userID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(userIDHeader)
	if raw == "" {
		raw = ctx.QueryParam("userId")
	}
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(userIDHeader + " header")
	}
	return kernel.UUIDFromString(raw)
}

func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if err := ctx.Validate(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrTransientStoreError):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
