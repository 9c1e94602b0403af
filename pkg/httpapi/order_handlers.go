package httpapi

import (
	"github.com/gin-gonic/gin"

	"wholesale/pkg/engine"
	"wholesale/pkg/order"
)

// orderResponse adds the presentation label and badge color to an order.
type orderResponse struct {
	order.Order
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
}

func newOrderResponse(o order.Order) orderResponse {
	return orderResponse{Order: o, StatusLabel: o.Status.Label(), StatusColor: o.Status.Color()}
}

type checkoutPayload struct {
	CustomerID   int64  `json:"customer_id"`
	DeliveryDate string `json:"delivery_date"`
	Notes        string `json:"notes"`
}

func (s *Server) checkout(c *gin.Context) {
	s.submitCart(c, false)
}

// checkoutOnBehalf is the admin order-for-customer submission.
func (s *Server) checkoutOnBehalf(c *gin.Context) {
	s.submitCart(c, true)
}

func (s *Server) submitCart(c *gin.Context, onBehalf bool) {
	var payload checkoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	stored, err := s.engine.Checkout(ctx, c.Param("cartID"), engine.SubmitRequest{
		CustomerID:   payload.CustomerID,
		DeliveryDate: payload.DeliveryDate,
		Notes:        payload.Notes,
		OnBehalf:     onBehalf,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, newOrderResponse(stored))
}

func (s *Server) listOrders(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	orders, err := s.engine.Orders(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	ok(c, out)
}

func (s *Server) getOrder(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	o, err := s.engine.Order(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, newOrderResponse(o))
}

func (s *Server) orderDetail(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	detail, err := s.engine.OrderDetail(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, detail)
}

func (s *Server) confirmProduction(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	o, err := s.engine.ConfirmProduction(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, newOrderResponse(o))
}

func (s *Server) markShipped(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	o, err := s.engine.MarkShipped(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, newOrderResponse(o))
}

func (s *Server) dashboard(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	d, err := s.engine.Dashboard(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, d)
}
