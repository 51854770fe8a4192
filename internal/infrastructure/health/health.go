// Package health drives the standard grpc.health.v1 service from a
// periodic store ping and exposes it over HTTP through grpc-gateway.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/rezkam/taskmate/internal/api"
)

// Default probe settings.
const (
	DefaultInterval = 10 * time.Second
	DefaultTimeout  = 2 * time.Second
)

// Pinger is anything that can report store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor owns a grpc health server and keeps the overall ("") service
// status in line with the store.
type Monitor struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	probed  bool
	serving bool
}

// NewMonitor creates a monitor. The status is NOT_SERVING until the first probe.
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Monitor{
		server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
		timeout:  min(DefaultTimeout, interval),
	}
	m.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return m
}

// Register adds the health service to s.
func (m *Monitor) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, m.server)
}

// Probe pings the store once and updates the serving status.
func (m *Monitor) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.pinger.Ping(ctx)
	serving := err == nil

	m.mu.Lock()
	changed := !m.probed || serving != m.serving
	m.probed = true
	m.serving = serving
	m.mu.Unlock()

	if serving {
		m.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	} else {
		m.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	}

	if changed {
		if serving {
			slog.InfoContext(ctx, "Store reachable, health SERVING")
		} else {
			slog.WarnContext(ctx, "Store unreachable, health NOT_SERVING", "error", err)
		}
	}
	return serving
}

// Run probes immediately and then every interval until ctx is done, at
// which point every service is marked NOT_SERVING.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// Dial connects a health client to the gRPC server at target, with the
// same otelgrpc instrumentation as the server side.
func Dial(target string) (healthpb.HealthClient, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create health client: %w", err)
	}
	return healthpb.NewHealthClient(conn), conn, nil
}

// NewHTTPHandler serves GET /health by calling client.Check through a
// grpc-gateway mux. SERVING answers 200 {"status":"SERVING"}; anything
// else answers 503 in the API error format.
func NewHTTPHandler(client healthpb.HealthClient) http.Handler {
	return runtime.NewServeMux(
		runtime.WithHealthEndpointAt(client, "/health"),
		runtime.WithErrorHandler(writeHealthError),
	)
}

func writeHealthError(ctx context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, _ *http.Request, err error) {
	st := status.Convert(err)

	detail := api.ErrorDetail{Code: "UNAVAILABLE", Message: "store unreachable"}
	if st.Code() == codes.NotFound {
		detail = api.ErrorDetail{Code: "NOT_FOUND", Message: "unknown service"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(runtime.HTTPStatusFromCode(st.Code()))
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: detail}); err != nil {
		slog.ErrorContext(ctx, "Failed to write health response", "error", err)
	}
}
