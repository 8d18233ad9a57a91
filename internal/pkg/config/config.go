package config

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - optional integrations (Redis, RabbitMQ, Consul, OTLP) are disabled when their address is empty
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cache     CacheConfig
	Checkout  CheckoutConfig
	Storage   StorageConfig
	AMQP      AMQPConfig
	Outbox    OutboxConfig
	Consul    ConsulConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`

	// Output defaults to stdout.
	Output io.Writer `ignored:"true"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"168h"`
}

type CacheConfig struct {
	CatalogTTL      time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
	CatalogPageSize int           `envconfig:"CATALOG_PAGE_SIZE" default:"20"`
	RedisAddr       string        `envconfig:"REDIS_ADDR"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
}

// CheckoutMode selects how order placement keeps header, lines and stock consistent.
type CheckoutMode string

const (
	CheckoutModeTransaction CheckoutMode = "transaction"
	CheckoutModeSaga        CheckoutMode = "saga"
)

type CheckoutConfig struct {
	Mode           CheckoutMode  `envconfig:"CHECKOUT_MODE" default:"transaction"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

type StorageConfig struct {
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:"http://localhost:54321"`
}

type AMQPConfig struct {
	URL           string `envconfig:"AMQP_URL"`
	OrderExchange string `envconfig:"AMQP_ORDER_EXCHANGE" default:"storefront.orders"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type ConsulConfig struct {
	Addr        string `envconfig:"CONSUL_ADDR"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"storefront-api"`
	ServiceID   string `envconfig:"SERVICE_ID"`
	AdvertiseIP string `envconfig:"SERVICE_ADVERTISE_IP"`
}

type TelemetryConfig struct {
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"storefront-api"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	StdoutTraces bool   `envconfig:"OTEL_STDOUT_TRACES" default:"false"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c CheckoutConfig) Validate() error {
	switch c.Mode {
	case CheckoutModeTransaction, CheckoutModeSaga:
		return nil
	default:
		return fmt.Errorf("unsupported CHECKOUT_MODE %q", c.Mode)
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Checkout.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-storefront",
			Duration: "1h",
		},
		Cache: CacheConfig{
			CatalogTTL:      5 * time.Minute,
			CatalogPageSize: 20,
		},
		Checkout: CheckoutConfig{
			Mode:           CheckoutModeTransaction,
			IdempotencyTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			PublicURL: "http://storage.test",
		},
		Outbox: OutboxConfig{
			PollInterval: time.Second,
			BatchSize:    50,
			MaxAttempts:  10,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "storefront-api-test",
		},
	}
}
