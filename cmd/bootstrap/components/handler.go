package components

import (
	"storefront/internal/handler"
	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewProductHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(orders *api.OrderHandler, products *api.ProductHandler, admin *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Orders: orders, Products: products, Admin: admin}
		},
	),
	fx.Invoke(handler.NewRouter),
)
