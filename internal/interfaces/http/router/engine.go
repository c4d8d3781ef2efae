package router

import (
	"fmt"
	"net/http"

	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"github.com/borrowtrack/backend/internal/infrastructure/logger"
	"github.com/borrowtrack/backend/internal/infrastructure/telemetry"
	"github.com/borrowtrack/backend/internal/interfaces/http/dto"
	"github.com/borrowtrack/backend/internal/interfaces/http/handler"
	"github.com/borrowtrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the endpoint handlers mounted by NewEngine
type Handlers struct {
	Customer    *handler.CustomerHandler
	Item        *handler.ItemHandler
	Transaction *handler.TransactionHandler
	Health      *handler.HealthHandler
}

// EngineOptions configures NewEngine. Metrics, RateLimiter and tracing are optional.
type EngineOptions struct {
	HTTP           config.HTTPConfig
	Logger         *zap.Logger
	Metrics        *telemetry.Metrics
	RateLimiter    *middleware.RateLimiter
	TracingEnabled bool
	ServiceName    string
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(h Handlers, opts EngineOptions) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	middleware.SetupValidator()

	engine.Use(middleware.RequestID(), logger.Recovery(log))
	if opts.TracingEnabled {
		engine.Use(
			middleware.Tracing(opts.ServiceName),
			middleware.SpanAttributes(),
			middleware.SpanErrorMarker(),
		)
	}
	engine.Use(logger.GinMiddleware(log))
	if opts.Metrics != nil {
		engine.Use(middleware.Metrics(opts.Metrics))
	}
	engine.Use(
		middleware.CORS(middleware.CORSConfigFrom(opts.HTTP)),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewDetail(dto.DetailNotFound))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewDetail(dto.DetailMethodNotAllowed))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Check)
	}
	if opts.Metrics != nil && opts.HTTP.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	prefix := opts.HTTP.APIPrefix
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}
	routerOpts := []RouterOption{WithPrefix(prefix)}
	if opts.RateLimiter != nil {
		routerOpts = append(routerOpts, WithGroupMiddleware(middleware.RateLimit(opts.RateLimiter)))
	}

	r := NewRouter(engine, routerOpts...)
	r.Register(customerRoutes(h.Customer)).
		Register(itemRoutes(h.Item)).
		Register(transactionRoutes(h.Transaction))
	r.Setup()

	return engine, nil
}

func customerRoutes(h *handler.CustomerHandler) *DomainGroup {
	return NewDomainGroup("customers", "/customers").
		GET("/", h.List).
		POST("/", h.Create).
		GET("/:id/", h.GetByID).
		PUT("/:id/", h.Replace).
		PATCH("/:id/", h.Update).
		DELETE("/:id/", h.Delete)
}

func itemRoutes(h *handler.ItemHandler) *DomainGroup {
	return NewDomainGroup("items", "/items").
		GET("/", h.List).
		POST("/", h.Create).
		GET("/:id/", h.GetByID).
		PUT("/:id/", h.Replace).
		PATCH("/:id/", h.Update).
		DELETE("/:id/", h.Delete)
}

func transactionRoutes(h *handler.TransactionHandler) *DomainGroup {
	return NewDomainGroup("transactions", "/transactions").
		GET("/", h.List).
		POST("/", h.Create).
		GET("/overdue/", h.ListOverdue).
		GET("/active/", h.ListActive).
		GET("/:id/", h.GetByID).
		PUT("/:id/", h.Replace).
		PATCH("/:id/", h.Update).
		DELETE("/:id/", h.Delete)
}
