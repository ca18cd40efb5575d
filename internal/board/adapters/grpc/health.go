package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"noteboard/internal/board/ports/stores"
	"noteboard/pkg/logger"
)

// Имена служб в ответах проверки состояния.
const (
	ServiceOverall = ""
	ServiceRecords = "noteboard.records"
	ServiceBlobs   = "noteboard.blobs"
)

// Probe связывает имя службы с проверкой доступности хранилища.
type Probe struct {
	Service string
	Pinger  stores.Pinger
}

// HealthReporter периодически опрашивает хранилища и публикует их состояние
// через стандартную службу grpc.health.v1.Health.
type HealthReporter struct {
	server   *health.Server
	probes   []Probe
	interval time.Duration
	timeout  time.Duration
}

// NewHealthReporter создает службу. До первой проверки все службы NOT_SERVING.
func NewHealthReporter(probes []Probe, interval, timeout time.Duration) *HealthReporter {
	srv := health.NewServer()
	srv.SetServingStatus(ServiceOverall, healthpb.HealthCheckResponse_NOT_SERVING)
	for _, p := range probes {
		srv.SetServingStatus(p.Service, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return &HealthReporter{
		server:   srv,
		probes:   probes,
		interval: interval,
		timeout:  timeout,
	}
}

// Register регистрирует службу на gRPC сервере.
func (h *HealthReporter) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

// CheckOnce опрашивает все хранилища параллельно и обновляет статусы.
// Общий статус SERVING, только если доступны все хранилища.
func (h *HealthReporter) CheckOnce(ctx context.Context) {
	log := logger.Log(ctx)
	healthy := make([]bool, len(h.probes))

	var g errgroup.Group
	for i, p := range h.probes {
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			err := p.Pinger.Ping(probeCtx)
			healthy[i] = err == nil

			status := healthpb.HealthCheckResponse_SERVING
			if err != nil {
				status = healthpb.HealthCheckResponse_NOT_SERVING
				log.Warn(ctx, "health probe failed", zap.String("service", p.Service), zap.Error(err))
			}
			h.server.SetServingStatus(p.Service, status)
			return nil
		})
	}
	_ = g.Wait()

	overall := healthpb.HealthCheckResponse_SERVING
	for _, ok := range healthy {
		if !ok {
			overall = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus(ServiceOverall, overall)
}

// Status возвращает текущий статус службы.
func (h *HealthReporter) Status(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// Run проверяет хранилища сразу и затем с интервалом до отмены контекста,
// после чего переводит все службы в NOT_SERVING.
func (h *HealthReporter) Run(ctx context.Context) {
	h.CheckOnce(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.CheckOnce(ctx)
		}
	}
}
