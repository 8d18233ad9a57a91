package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"storefront/internal/domain/user"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"
	"storefront/internal/infra/telemetry"
	"storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Orders   *api.OrderHandler
	Products *api.ProductHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, inst *telemetry.Instruments, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger, inst)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, inst *telemetry.Instruments) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	if inst != nil {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName, otelgin.WithTracerProvider(inst.TracerProvider)))
	}
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		addRoutes(products, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Products.ListProducts},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Products.GetProduct},
		})

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Orders.PlaceOrder},
				{Method: http.MethodGet, Path: "", Handler: h.Orders.ListMyOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Orders.GetOrder},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Orders.UpdateOrder},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Orders.CancelOrder},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/orders", Handler: h.Admin.ListOrders, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/orders/:id/status", Handler: h.Admin.UpdateOrderStatus, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/products", Handler: h.Admin.CreateProduct, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/products/:id", Handler: h.Admin.UpdateProduct, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/products/:id", Handler: h.Admin.DeleteProduct, Mw: adminOnly},
				{Method: http.MethodGet, Path: "/users", Handler: h.Admin.ListUsers, Mw: adminOnly},
				{Method: http.MethodGet, Path: "/users/:id/orders", Handler: h.Admin.ListUserOrders, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
