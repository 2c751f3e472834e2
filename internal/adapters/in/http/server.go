// Package http exposes the order lifecycle over an echo HTTP server.
// It translates JSON requests into commands and queries, resolves the
// caller's identity from the bearer token, and maps application errors onto
// status codes.
package http

import (
	"net/http"

	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/application/usecases/queries"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/core/domain/services"
	"bibdelivery/internal/pkg/auth"
	"bibdelivery/internal/pkg/errs"
	"bibdelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	assignCourierHandler commands.AssignCourierCommandHandler
	performActionHandler commands.PerformOrderActionCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	tokens  auth.TokenService
	pricing services.PricingEstimator
	origin  kernel.Address
	counter *metrics.OrderMetrics
}

// NewServer creates an HTTP server wired to the command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	performActionHandler commands.PerformOrderActionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	tokens auth.TokenService,
	pricing services.PricingEstimator,
	origin kernel.Address,
	counter *metrics.OrderMetrics,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		assignCourierHandler: assignCourierHandler,
		performActionHandler: performActionHandler,
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		tokens:               tokens,
		pricing:              pricing,
		origin:               origin,
		counter:              counter,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
// The estimate endpoint, liveness probe and metrics scrape are public;
// everything else sits behind the bearer-token middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders/estimate", s.EstimateDelivery)

	api.POST("/orders", s.CreateOrder, s.requireIdentity)
	api.GET("/orders", s.ListOrders, s.requireIdentity)
	api.GET("/orders/:id", s.GetOrder, s.requireIdentity)
	api.POST("/orders/manage", s.ManageOrder, s.requireIdentity)
	api.POST("/orders/:id/actions", s.PerformOrderAction, s.requireIdentity)
}

// parseUUID wraps malformed identifiers as validation errors so they map to
// 400 instead of an internal error.
func parseUUID(paramName, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders. Customers only: the order is
// created for the authenticated caller, never for an ID from the body.
func (s *Server) CreateOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return writeError(c, auth.ErrUnauthorized)
	}
	if identity.Role != auth.RoleCustomer {
		return writeError(c, auth.ErrForbidden)
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	address, err := req.DeliveryAddress.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, payload := range req.Items {
		item, itemErr := order.NewItem(payload.ParticipantRef, payload.BibNumber, payload.EventName)
		if itemErr != nil {
			return writeError(c, itemErr)
		}
		items = append(items, item)
	}

	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), identity.ID, items, address, method)
	if err != nil {
		return writeError(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	s.counter.OrdersCreated.WithLabelValues(created.PaymentMethod().String()).Inc()
	return c.JSON(http.StatusCreated, map[string]orderResponse{"order": fromAggregate(created)})
}

// ListOrders handles GET /api/v1/orders with role-based filtering.
func (s *Server) ListOrders(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return writeError(c, auth.ErrUnauthorized)
	}

	results, err := s.listOrdersHandler.Handle(c.Request().Context(), identity, queries.NewListOrdersQuery())
	if err != nil {
		return writeError(c, err)
	}

	summaries := make([]orderSummaryResponse, 0, len(results))
	for _, result := range results {
		summaries = append(summaries, fromSummary(result))
	}

	return c.JSON(http.StatusOK, map[string][]orderSummaryResponse{"orders": summaries})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return writeError(c, auth.ErrUnauthorized)
	}

	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.getOrderHandler.Handle(c.Request().Context(), identity, query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]orderResponse{"order": fromQueryResponse(result)})
}

// ManageOrder handles POST /api/v1/orders/manage, the admin assignment route.
func (s *Server) ManageOrder(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return writeError(c, auth.ErrUnauthorized)
	}

	var req manageOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return writeError(c, err)
	}
	courierID, err := parseUUID("courierId", req.CourierID)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return writeError(c, err)
	}

	assigned, err := s.assignCourierHandler.Handle(c.Request().Context(), identity, cmd)
	if err != nil {
		return writeError(c, err)
	}

	s.counter.Transitions.WithLabelValues("ASSIGN").Inc()
	return c.JSON(http.StatusOK, map[string]orderResponse{"order": fromAggregate(assigned)})
}

// PerformOrderAction handles POST /api/v1/orders/:id/actions.
// PICKUP is verified against the pin field, DELIVER against otp.
func (s *Server) PerformOrderAction(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return writeError(c, auth.ErrUnauthorized)
	}

	orderID, err := parseUUID("orderID", c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req orderActionRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	action, err := order.ParseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}

	code := req.Pin
	if action == order.ActionDeliver {
		code = req.Otp
	}

	cmd, err := commands.NewPerformOrderActionCommand(orderID, action, code)
	if err != nil {
		return writeError(c, err)
	}

	if _, err = s.performActionHandler.Handle(c.Request().Context(), identity, cmd); err != nil {
		return writeError(c, err)
	}

	s.counter.Transitions.WithLabelValues(action.String()).Inc()

	message := "Order picked up successfully"
	if action == order.ActionDeliver {
		message = "Order delivered successfully"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// EstimateDelivery handles POST /api/v1/orders/estimate, the public quote
// endpoint used by the order form before submission.
func (s *Server) EstimateDelivery(c echo.Context) error {
	var req estimateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	address, err := req.DeliveryAddress.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	distanceKm, fee, err := s.pricing.Estimate(s.origin, address)
	if err != nil {
		s.counter.Estimates.WithLabelValues("false").Inc()
		return writeError(c, err)
	}

	s.counter.Estimates.WithLabelValues("true").Inc()
	return c.JSON(http.StatusOK, estimateResponse{DistanceKm: distanceKm, DeliveryFee: fee})
}
