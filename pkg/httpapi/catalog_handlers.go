package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wholesale/pkg/catalog"
	"wholesale/pkg/validation"
)

// productPayload keeps transport parsing separate from catalog.Product.
// Numeric fields are pointers so a missing value is reported, not zeroed.
type productPayload struct {
	Name         string              `json:"name"`
	Category     string              `json:"category"`
	BasePrice    decimal.NullDecimal `json:"base_price"`
	LeadTimeDays *int                `json:"lead_time_days"`
	Glyph        string              `json:"glyph"`
	Description  string              `json:"description"`
	Alias        string              `json:"alias"`
	Visible      *bool               `json:"visible"`
	Notes        string              `json:"notes"`
}

// product validates the numeric fields the form requires and builds the
// catalog entry.
func (p productPayload) product(id int64) (catalog.Product, error) {
	var errs validation.Errors
	if !p.BasePrice.Valid {
		errs.Add("base_price", "base price is required")
	}
	if p.LeadTimeDays == nil {
		errs.Add("lead_time_days", "lead time is required")
	}
	if err := errs.Err(); err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:           id,
		Name:         p.Name,
		Category:     catalog.Category(p.Category),
		BasePrice:    p.BasePrice.Decimal,
		LeadTimeDays: *p.LeadTimeDays,
		Glyph:        p.Glyph,
		Description:  p.Description,
		Alias:        p.Alias,
		Visible:      p.Visible == nil || *p.Visible,
		Notes:        p.Notes,
	}, nil
}

func (s *Server) listProducts(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	products, err := s.engine.Products(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	p, err := s.engine.Product(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	p, err := payload.product(0)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	stored, err := s.engine.SaveProduct(ctx, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	created(c, stored)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid JSON")
		return
	}
	p, err := payload.product(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	stored, err := s.engine.SaveProduct(ctx, p)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, stored)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, valid := int64Param(c, "id")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	if err := s.engine.DeleteProduct(ctx, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) customerCatalog(c *gin.Context) {
	id, valid := int64Param(c, "customerID")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	items, err := s.engine.CustomerCatalog(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, items)
}

func (s *Server) onBehalfCatalog(c *gin.Context) {
	id, valid := int64Param(c, "customerID")
	if !valid {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	items, err := s.engine.OnBehalfCatalog(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	ok(c, items)
}
