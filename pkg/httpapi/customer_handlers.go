package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wholesale/pkg/customer"
	"wholesale/pkg/pricing"
)

type customerPayload struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Billing string `json:"billing"`
	Address string `json:"address"`
	Mode    string `json:"mode"`
	// Overrides is keyed by product id in decimal form, as JSON objects require.
	Overrides map[string]pricing.Override `json:"overrides"`
}

func (s *Server) searchCustomers(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	customers, err := s.engine.SearchCustomers(ctx, c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, customers)
}

func (s *Server) getCustomer(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	cust, err := s.engine.Customer(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, cust)
}

func (s *Server) createCustomer(c *gin.Context) {
	var payload customerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	overrides := make(map[int64]pricing.Override, len(payload.Overrides))
	for raw, o := range payload.Overrides {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || pid <= 0 {
			badRequest(c, "invalid product id "+strconv.Quote(raw))
			return
		}
		overrides[pid] = o
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	stored, err := s.engine.CreateCustomer(ctx, customer.Customer{
		Name:    payload.Name,
		Type:    customer.Type(payload.Type),
		Billing: customer.Billing(payload.Billing),
		Address: payload.Address,
		Mode:    customer.Mode(payload.Mode),
	}, overrides)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, stored)
}

func (s *Server) customerHistory(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	history, err := s.engine.History(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	orders := make([]orderResponse, 0, len(history.Orders))
	for _, o := range history.Orders {
		orders = append(orders, newOrderResponse(o))
	}
	ok(c, gin.H{
		"customer_id":     history.CustomerID,
		"orders":          orders,
		"count":           history.Count,
		"total_spent":     history.TotalSpent,
		"completed_count": history.CompletedCount,
	})
}

func (s *Server) listOverrides(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	overrides, err := s.engine.Overrides(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, overrides)
}

func (s *Server) setOverride(c *gin.Context) {
	cid, valid := int64Param(c, "id")
	if !valid {
		return
	}
	pid, valid := int64Param(c, "productID")
	if !valid {
		return
	}
	var o pricing.Override
	if err := c.ShouldBindJSON(&o); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	if err := s.engine.SetOverride(ctx, cid, pid, o); err != nil {
		s.fail(c, err)
		return
	}
	item, err := s.engine.Resolve(ctx, cid, pid)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": item})
}
