package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/rezkam/taskmate/internal/application/tasks"
	"github.com/rezkam/taskmate/internal/config"
	"github.com/rezkam/taskmate/internal/infrastructure/health"
	httpserver "github.com/rezkam/taskmate/internal/infrastructure/http"
	"github.com/rezkam/taskmate/internal/infrastructure/http/handler"
	"github.com/rezkam/taskmate/internal/infrastructure/observability"
	"github.com/rezkam/taskmate/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/taskmate/internal/infrastructure/persistence/sqlite"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// store is what the server needs from either backend.
type store interface {
	tasks.Repository
	health.Pinger
	io.Closer
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	obsCfg := observability.Config{
		Enabled:        cfg.Observability.OTelEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: version,
	}

	lp, logger, err := observability.InitLogger(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider("logger", lp.Shutdown)
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider("tracer", tp.Shutdown)

	mp, err := observability.InitMeterProvider(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider("meter", mp.Shutdown)

	slog.InfoContext(ctx, "starting taskmate server", "version", version)

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "storage initialized", "dsn", maskPassword(cfg.Database.DSN))

	svc := tasks.NewService(st, tasks.Config{})

	monitor := health.NewMonitor(st, cfg.Health.Interval)
	grpcServer, lis, err := createGRPCServer(ctx, cfg.GRPC, monitor)
	if err != nil {
		_ = st.Close()
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}
	go monitor.Run(ctx)

	healthClient, healthConn, err := health.Dial(cfg.GRPC.Addr())
	if err != nil {
		_ = st.Close()
		return err
	}
	cleanup := newCleanup(healthConn, st)
	defer cleanup()

	apiServer := httpserver.NewAPIServer(
		handler.NewRouter(svc),
		health.NewHTTPHandler(healthClient),
		httpserver.ServerConfig{
			Host:              cfg.HTTP.Host,
			Port:              cfg.HTTP.Port,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
			MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
			ServiceName:       cfg.Observability.ServiceName + "-http",
		},
	)

	errResult := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errResult <- fmt.Errorf("failed to serve gRPC: %w", err)
		}
	}()
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")
	case err := <-errResult:
		cancel()
		stopServers(grpcServer, apiServer, cfg.ShutdownTimeout)
		return err
	}

	stopServers(grpcServer, apiServer, cfg.ShutdownTimeout)
	return nil
}

// openStore connects to the backend named by the DSN scheme.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		s, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			AutoMigrate:     cfg.AutoMigrate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres store: %w", err)
		}
		return s, nil
	default:
		s, err := sqlite.NewStore(ctx, sqlite.DBConfig{DSN: cfg.DSN, AutoMigrate: cfg.AutoMigrate})
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite store: %w", err)
		}
		return s, nil
	}
}

// createGRPCServer listens for the health service, which the HTTP gateway
// proxies to GET /health.
func createGRPCServer(ctx context.Context, cfg config.GRPCConfig, monitor *health.Monitor) (*grpc.Server, net.Listener, error) {
	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen: %w", err)
	}

	s := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     cfg.MaxConnectionIdle,
			MaxConnectionAge:      cfg.MaxConnectionAge,
			MaxConnectionAgeGrace: cfg.MaxConnectionAgeGrace,
			Time:                  cfg.KeepaliveTime,
			Timeout:               cfg.KeepaliveTimeout,
		}),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	monitor.Register(s)

	slog.InfoContext(ctx, "gRPC health server listening", "address", lis.Addr())
	return s, lis, nil
}

// stopServers drains HTTP first, then the gRPC server it proxies to. A
// gRPC drain that outlives the timeout is forced.
func stopServers(grpcServer *grpc.Server, apiServer *httpserver.APIServer, timeout time.Duration) {
	shutdownCtx, cancel := newShutdownContext(timeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "failed to shutdown HTTP server", "error", err)
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		slog.InfoContext(shutdownCtx, "gRPC server shutdown complete")
	case <-shutdownCtx.Done():
		slog.WarnContext(shutdownCtx, "gRPC server shutdown timed out, forcing stop")
		grpcServer.Stop()
	}
}

// shutdownProvider flushes a telemetry provider without hanging on an
// unreachable collector.
func shutdownProvider(name string, shutdown func(context.Context) error) {
	ctx, cancel := newShutdownContext(5 * time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown "+name+" provider", "error", err)
	}
}

// newShutdownContext starts from Background because the run context is
// already cancelled at shutdown.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
