// Package http exposes the order workflow over a JSON API served by echo.
package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type PaymentStatusApplier interface {
	Handle(ctx context.Context, cmd commands.ApplyPaymentStatusCommand) (*order.Order, error)
}

type DeliveryStatusApplier interface {
	Handle(ctx context.Context, cmd commands.ApplyDeliveryStatusCommand) (*order.Order, error)
}

type MyOrdersLister interface {
	Handle(ctx context.Context, query queries.ListMyOrdersQuery) ([]*order.Order, error)
}

type AllOrdersLister interface {
	Handle(ctx context.Context, query queries.ListAllOrdersQuery) ([]queries.ListAllOrdersQueryResponse, error)
}

type OrderGetter interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

// EventStream upgrades a request into a stream of invalidation notices for a.
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, a actor.Actor) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   OrderCreator
	applyPaymentHandler  PaymentStatusApplier
	applyDeliveryHandler DeliveryStatusApplier

	// Query handlers
	listMyOrdersHandler  MyOrdersLister
	listAllOrdersHandler AllOrdersLister
	getOrderHandler      OrderGetter

	events EventStream
}

func NewServer(
	createOrderHandler OrderCreator,
	applyPaymentHandler PaymentStatusApplier,
	applyDeliveryHandler DeliveryStatusApplier,
	listMyOrdersHandler MyOrdersLister,
	listAllOrdersHandler AllOrdersLister,
	getOrderHandler OrderGetter,
	events EventStream,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		applyPaymentHandler:  applyPaymentHandler,
		applyDeliveryHandler: applyDeliveryHandler,
		listMyOrdersHandler:  listMyOrdersHandler,
		listAllOrdersHandler: listAllOrdersHandler,
		getOrderHandler:      getOrderHandler,
		events:               events,
	}
}

// RegisterRoutes mounts the order API on g. Every route requires credentials;
// middleware runs after authentication.
func (s *Server) RegisterRoutes(g *echo.Group, resolver ports.ActorResolver, middleware ...echo.MiddlewareFunc) {
	orders := g.Group("/orders", append([]echo.MiddlewareFunc{Authenticate(resolver)}, middleware...)...)

	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListAllOrders)
	orders.GET("/myOrders", s.ListMyOrders)
	orders.GET("/events", s.StreamEvents)
	orders.GET("/:id", s.GetOrder)
	orders.PATCH("/:id/payment", s.ApplyPaymentStatus)
	orders.PATCH("/:id/deliver", s.ApplyDeliveryStatus)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}

	var body NewOrder
	if err = c.Bind(&body); err != nil {
		return err
	}

	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return err
	}
	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, commands.OrderLine{
			ProductRef: order.ProductRef(item.ProductRef),
			Quantity:   item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(a, kernel.NewUUID(), lines, method)
	if err != nil {
		return err
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrder(created))
}

// ListMyOrders handles GET /api/orders/myOrders.
func (s *Server) ListMyOrders(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListMyOrdersQuery(a)
	if err != nil {
		return err
	}

	orders, err := s.listMyOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(orders))
}

// ListAllOrders handles GET /api/orders.
func (s *Server) ListAllOrders(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListAllOrdersQuery(a)
	if err != nil {
		return err
	}

	rows, err := s.listAllOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminOrders(rows))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(a, orderID)
	if err != nil {
		return err
	}

	o, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(o))
}

// ApplyPaymentStatus handles PATCH /api/orders/:id/payment.
func (s *Server) ApplyPaymentStatus(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var body PaymentUpdate
	if err = c.Bind(&body); err != nil {
		return err
	}
	status, err := order.ParsePaymentStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyPaymentStatusCommand(a, orderID, status, body.TransactionID)
	if err != nil {
		return err
	}

	updated, err := s.applyPaymentHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(updated))
}

// ApplyDeliveryStatus handles PATCH /api/orders/:id/deliver.
func (s *Server) ApplyDeliveryStatus(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var body DeliveryUpdate
	if err = c.Bind(&body); err != nil {
		return err
	}
	target := body.target()
	if target == "" {
		return errs.NewValueIsRequiredError("status")
	}
	status, err := order.ParseDeliveryStatus(target)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyDeliveryStatusCommand(a, orderID, status)
	if err != nil {
		return err
	}

	updated, err := s.applyDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(updated))
}

// StreamEvents handles GET /api/orders/events.
func (s *Server) StreamEvents(c echo.Context) error {
	a, err := actorFrom(c)
	if err != nil {
		return err
	}
	if s.events == nil {
		return echo.NewHTTPError(http.StatusNotFound, "event stream is disabled")
	}
	// A failed upgrade has already written its own response.
	_ = s.events.Serve(c.Response(), c.Request(), a)
	return nil
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromBytes(id[:])
}
