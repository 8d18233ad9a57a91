package bootstrap

import (
	"storefront/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TelemetryModule,
	DBModule,
	JWTModule,
	CacheModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	MessagingModule,
	DiscoveryModule,
)
