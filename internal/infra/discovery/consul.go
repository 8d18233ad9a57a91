package discovery

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"storefront/internal/pkg/errs"

	"github.com/hashicorp/consul/api"
)

var ErrNoHealthyInstance = errs.New("no healthy service instance")

type ServiceConfig struct {
	Name    string
	ID      string
	Address string
	Port    int
	Tags    []string
}

// ConsulRegistrar registers this process with a Consul agent and resolves
// other services through it.
type ConsulRegistrar struct {
	client *api.Client
	logger *slog.Logger
}

func NewConsulRegistrar(addr string, logger *slog.Logger) (*ConsulRegistrar, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create consul client")
	}
	if _, err := client.Agent().Self(); err != nil {
		return nil, errs.Wrap(err, "failed to reach consul agent")
	}

	logger.Info("connected to consul", "addr", addr)
	return &ConsulRegistrar{client: client, logger: logger}, nil
}

// Register adds the service with an HTTP check against /health.
func (c *ConsulRegistrar) Register(cfg ServiceConfig) error {
	address := cfg.Address
	if address == "" {
		address = outboundIP()
	}

	registration := &api.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Port:    cfg.Port,
		Address: address,
		Tags:    cfg.Tags,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s/health", net.JoinHostPort(address, strconv.Itoa(cfg.Port))),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "30s",
		},
	}

	if err := c.client.Agent().ServiceRegister(registration); err != nil {
		return errs.Wrap(err, "failed to register service")
	}

	c.logger.Info("registered service", "name", cfg.Name, "id", cfg.ID, "address", address, "port", cfg.Port)
	return nil
}

func (c *ConsulRegistrar) Deregister(serviceID string) error {
	if err := c.client.Agent().ServiceDeregister(serviceID); err != nil {
		return errs.Wrap(err, "failed to deregister service")
	}
	c.logger.Info("deregistered service", "id", serviceID)
	return nil
}

// ServiceURL returns the base URL of the first healthy instance of name.
func (c *ConsulRegistrar) ServiceURL(name string) (string, error) {
	entries, _, err := c.client.Health().Service(name, "", true, nil)
	if err != nil {
		return "", errs.Wrap(err, "failed to query service health")
	}
	if len(entries) == 0 {
		return "", errs.Wrapf(ErrNoHealthyInstance, "service %s", name)
	}

	svc := entries[0].Service
	address := svc.Address
	if address == "" {
		address = entries[0].Node.Address
	}
	return "http://" + net.JoinHostPort(address, strconv.Itoa(svc.Port)), nil
}

// outboundIP picks the address other hosts can reach us on.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
