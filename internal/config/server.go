package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezkam/taskmate/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	GRPC            GRPCConfig
	Health          HealthConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TASKMATE_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration. Zero values fall back to
// the server package defaults.
type HTTPConfig struct {
	Host              string        `env:"TASKMATE_HTTP_HOST"`
	Port              string        `env:"TASKMATE_HTTP_PORT" default:"8081"`
	ReadTimeout       time.Duration `env:"TASKMATE_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TASKMATE_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TASKMATE_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TASKMATE_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TASKMATE_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TASKMATE_HTTP_MAX_BODY_BYTES"`
}

// GRPCConfig holds the health gRPC server configuration.
type GRPCConfig struct {
	Host string `env:"TASKMATE_GRPC_HOST" default:"localhost"`
	Port string `env:"TASKMATE_GRPC_PORT" default:"8082"`

	KeepaliveTime         time.Duration `env:"TASKMATE_GRPC_KEEPALIVE_TIME" default:"5m"`
	KeepaliveTimeout      time.Duration `env:"TASKMATE_GRPC_KEEPALIVE_TIMEOUT" default:"20s"`
	MaxConnectionIdle     time.Duration `env:"TASKMATE_GRPC_MAX_CONNECTION_IDLE" default:"15m"`
	MaxConnectionAge      time.Duration `env:"TASKMATE_GRPC_MAX_CONNECTION_AGE" default:"30m"`
	MaxConnectionAgeGrace time.Duration `env:"TASKMATE_GRPC_MAX_CONNECTION_AGE_GRACE" default:"5s"`
}

// Addr is the address the gateway dials.
func (c GRPCConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// HealthConfig controls the store probe behind the health service.
type HealthConfig struct {
	Interval time.Duration `env:"TASKMATE_HEALTH_INTERVAL" default:"10s"`
}

// Validate validates the health configuration.
func (c *HealthConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("TASKMATE_HEALTH_INTERVAL must be positive, got %s", c.Interval)
	}
	return nil
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TASKMATE_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"taskmate"`
}

// LoadServerConfig loads an optional .env file from the working directory,
// then reads and validates the server configuration. Variables already in
// the environment take precedence over the file.
func LoadServerConfig() (*ServerConfig, error) {
	return loadServerConfig(".env")
}

func loadServerConfig(dotenv string) (*ServerConfig, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", dotenv, err)
	}

	cfg := &ServerConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	return cfg, nil
}
