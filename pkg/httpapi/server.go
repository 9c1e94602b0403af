package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wholesale/pkg/catalog"
	"wholesale/pkg/customer"
	"wholesale/pkg/engine"
	"wholesale/pkg/order"
	"wholesale/pkg/router"
	"wholesale/pkg/storage/memstore"
	"wholesale/pkg/validation"
	"wholesale/pkg/version"
)

// ConfirmHeader is the single confirmation protocol for destructive admin
// calls: the request must carry "X-Confirm: yes".
const ConfirmHeader = "X-Confirm"

// requestTimeout bounds every call into the engine.
const requestTimeout = 3 * time.Second

// Server wires HTTP endpoints to the ordering engine.
type Server struct {
	engine *engine.Engine
	logger *zap.Logger
	router *gin.Engine
}

// New builds the gin router once. A nil logger disables request logging.
func New(eng *engine.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: eng, logger: logger}
	s.router = s.routes()
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(s.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", ConfirmHeader, "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": version.Version(), "build_time": version.BuildTime()})
	})

	api := r.Group("/api")
	{
		api.GET("/route", s.currentRoute)
		api.PUT("/route", s.navigate)

		api.GET("/catalog/:customerID", s.customerCatalog)

		products := api.Group("/products")
		{
			products.GET("", s.listProducts)
			products.POST("", s.createProduct)
			products.GET("/:id", s.getProduct)
			products.PUT("/:id", s.updateProduct)
			products.DELETE("/:id", RequireConfirmation(), s.deleteProduct)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", s.searchCustomers)
			customers.POST("", RequireConfirmation(), s.createCustomer)
			customers.GET("/:id", s.getCustomer)
			customers.GET("/:id/history", s.customerHistory)
			customers.GET("/:id/overrides", s.listOverrides)
			customers.PUT("/:id/overrides/:productID", s.setOverride)
		}

		carts := api.Group("/carts")
		{
			carts.POST("", s.openCart)
			carts.GET("/:cartID", s.getCart)
			carts.PUT("/:cartID/lines/:productID", s.updateCartLine)
			carts.POST("/:cartID/clear", s.clearCart)
			carts.DELETE("/:cartID", s.discardCart)
			carts.POST("/:cartID/checkout", s.checkout)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", s.listOrders)
			orders.GET("/:id", s.getOrder)
			orders.GET("/:id/detail", s.orderDetail)
			orders.POST("/:id/confirm-production", s.confirmProduction)
			orders.POST("/:id/ship", s.markShipped)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/dashboard", s.dashboard)
			admin.GET("/catalog/:customerID", s.onBehalfCatalog)
			admin.POST("/carts/:cartID/checkout", s.checkoutOnBehalf)
		}
	}
	return r
}

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one structured line per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		}
		switch {
		case status >= 500:
			logger.Error("Server error", fields...)
		case status >= 400:
			logger.Warn("Client error", fields...)
		default:
			logger.Info("Request", fields...)
		}
	}
}

// RequireConfirmation blocks the handler unless the confirmation header is
// present, so nothing is mutated without it.
func RequireConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(ConfirmHeader) != "yes" {
			c.AbortWithStatusJSON(http.StatusPreconditionRequired, gin.H{"ok": false, "error": "需要确认"})
			return
		}
		c.Next()
	}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// fail maps engine errors to a status code and the message a user sees.
func (s *Server) fail(c *gin.Context, err error) {
	if validation.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "输入无效", "fields": validation.Fields(err)})
		return
	}
	status, msg := http.StatusInternalServerError, "服务器错误"
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		status, msg = http.StatusBadRequest, "购物车为空"
	case errors.Is(err, order.ErrMissingCustomer):
		status, msg = http.StatusBadRequest, "请选择一个客户"
	case errors.Is(err, order.ErrInvalidDate):
		status, msg = http.StatusBadRequest, "交付日期格式应为 YYYY-MM-DD"
	case errors.Is(err, order.ErrUnknownCustomer), errors.Is(err, customer.ErrNotFound):
		status, msg = http.StatusNotFound, "客户不存在"
	case errors.Is(err, order.ErrHiddenProduct):
		status, msg = http.StatusUnprocessableEntity, "购物车中有不可订购的商品"
	case errors.Is(err, order.ErrUnknownProduct):
		status, msg = http.StatusUnprocessableEntity, "购物车中有已下架商品"
	case errors.Is(err, catalog.ErrNotFound):
		status, msg = http.StatusNotFound, "商品不存在"
	case errors.Is(err, order.ErrNotFound):
		status, msg = http.StatusNotFound, "订单不存在"
	case errors.Is(err, engine.ErrCartNotFound):
		status, msg = http.StatusNotFound, "购物车不存在"
	case errors.Is(err, order.ErrIllegalTransition):
		status, msg = http.StatusConflict, "订单状态无法变更"
	case errors.Is(err, router.ErrUnknownRoute):
		status, msg = http.StatusBadRequest, "未知页面"
	case errors.Is(err, memstore.ErrBusy), errors.Is(err, memstore.ErrClosed), errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusServiceUnavailable, "服务繁忙，请稍后再试"
	}
	if status >= 500 {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// ctx bounds a handler's engine calls.
func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// int64Param parses a positive integer path parameter, answering 400 itself
// when it is malformed.
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
