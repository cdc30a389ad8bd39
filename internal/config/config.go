package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Service holds settings shared by both binaries
type Service struct {
	Environment string `envconfig:"ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
	BaseURL     string `envconfig:"BASE_URL" default:"http://localhost:8080"`
}

// Registry selects and configures the link registry backend
type Registry struct {
	Backend string `envconfig:"BACKEND" default:"memory"`
}

// Redis holds connection settings for the Redis link registry
type Redis struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

// SQS holds click queue settings
type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL" required:"true"`
	Region   string `envconfig:"REGION" required:"true"`
}

// ClickHouse holds click event store settings
type ClickHouse struct {
	Host            string `envconfig:"HOST" required:"true"`
	Port            string `envconfig:"PORT" required:"true"`
	Database        string `envconfig:"DB" required:"true"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Consumer holds ingest pipeline settings
type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

// Geo configures the IP geolocation collaborator
type Geo struct {
	Endpoint   string `envconfig:"ENDPOINT" default:"https://ipapi.co"`
	TimeoutSec int    `envconfig:"TIMEOUT_SEC" default:"3"`
}

// Recording bounds the click recording side effects on the redirect path
type Recording struct {
	TimeoutSec int `envconfig:"TIMEOUT_SEC" default:"2"`
}

type Config struct {
	Service    Service    `envconfig:"SERVICE"`
	Registry   Registry   `envconfig:"REGISTRY"`
	Redis      Redis      `envconfig:"REDIS"`
	SQS        SQS        `envconfig:"SQS"`
	ClickHouse ClickHouse `envconfig:"CLICKHOUSE"`
	Consumer   Consumer   `envconfig:"CONSUMER"`
	Geo        Geo        `envconfig:"GEO"`
	Recording  Recording  `envconfig:"RECORDING"`
}

func Load() (*Config, error) {
	// Ignore error if .env not found (e.g. prod)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
