package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// cartLinePayload updates quantity, notes, or both; absent fields are left alone.
type cartLinePayload struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// customerQuery reads the optional ?customer_id= used to price a cart.
func customerQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("customer_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		badRequest(c, "invalid customer_id")
		return 0, false
	}
	return id, true
}

func (s *Server) openCart(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	id, err := s.engine.NewCart(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, gin.H{"id": id})
}

func (s *Server) getCart(c *gin.Context) {
	customerID, valid := customerQuery(c)
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	view, err := s.engine.Cart(ctx, c.Param("cartID"), customerID)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, view)
}

func (s *Server) updateCartLine(c *gin.Context) {
	pid, valid := int64Param(c, "productID")
	if !valid {
		return
	}
	customerID, valid := customerQuery(c)
	if !valid {
		return
	}
	var payload cartLinePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	if payload.Quantity == nil && payload.Notes == nil {
		badRequest(c, "quantity or notes is required")
		return
	}
	cartID := c.Param("cartID")
	ctx, cancel := s.ctx(c)
	defer cancel()
	if payload.Quantity != nil {
		if err := s.engine.SetCartQuantity(ctx, cartID, pid, *payload.Quantity); err != nil {
			s.fail(c, err)
			return
		}
	}
	if payload.Notes != nil {
		if err := s.engine.SetCartNotes(ctx, cartID, pid, *payload.Notes); err != nil {
			s.fail(c, err)
			return
		}
	}
	view, err := s.engine.Cart(ctx, cartID, customerID)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, view)
}

func (s *Server) clearCart(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	if err := s.engine.ClearCart(ctx, c.Param("cartID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) discardCart(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	if err := s.engine.DiscardCart(ctx, c.Param("cartID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
