package bootstrap

import (
	"context"
	"log/slog"
	"strconv"

	"storefront/internal/infra/discovery"
	"storefront/internal/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var DiscoveryModule = fx.Module("discovery",
	fx.Invoke(
		RegisterService,
	),
)

func RegisterService(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	if cfg.Consul.Addr == "" {
		return nil
	}

	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		return err
	}
	serviceID := cfg.Consul.ServiceID
	if serviceID == "" {
		serviceID = cfg.Consul.ServiceName + "-" + uuid.NewString()[:8]
	}

	var registrar *discovery.ConsulRegistrar
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r, err := discovery.NewConsulRegistrar(cfg.Consul.Addr, logger)
			if err != nil {
				return err
			}
			if err := r.Register(discovery.ServiceConfig{
				Name:    cfg.Consul.ServiceName,
				ID:      serviceID,
				Address: cfg.Consul.AdvertiseIP,
				Port:    port,
				Tags:    []string{"api", "storefront"},
			}); err != nil {
				return err
			}
			registrar = r
			return nil
		},
		OnStop: func(_ context.Context) error {
			if registrar == nil {
				return nil
			}
			return registrar.Deregister(serviceID)
		},
	})
	return nil
}
