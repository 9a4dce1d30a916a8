package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/config"
	"github.com/Suleiman-Moraes/device-api/internal/ports"
	"github.com/Suleiman-Moraes/device-api/pkg/decorator"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/Suleiman-Moraes/device-api/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	FetchHealthReportQuery struct{}

	HealthResult struct {
		Status       string                            `json:"status"`
		Version      string                            `json:"version"`
		Uptime       string                            `json:"uptime"`
		Dependencies map[string]ports.DependencyStatus `json:"dependencies"`
	}

	FetchHealthReportQueryHandler = decorator.QueryHandler[FetchHealthReportQuery, *HealthResult]

	fetchHealthReportQueryHandler struct {
		dbHealthChecker    ports.DatabaseHealthChecker
		cacheHealthChecker ports.CacheHealthChecker
		startTime          time.Time
	}
)

func NewFetchHealthReportQueryHandler(
	dbHealthChecker ports.DatabaseHealthChecker,
	cacheHealthChecker ports.CacheHealthChecker,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) FetchHealthReportQueryHandler {
	return decorator.ApplyQueryDecorators[FetchHealthReportQuery, *HealthResult](
		fetchHealthReportQueryHandler{
			dbHealthChecker:    dbHealthChecker,
			cacheHealthChecker: cacheHealthChecker,
			startTime:          time.Now(),
		},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h fetchHealthReportQueryHandler) Execute(ctx context.Context, _ FetchHealthReportQuery) (*HealthResult, error) {
	dependencies := make(map[string]ports.DependencyStatus)

	start := time.Now()
	dbErr := h.dbHealthChecker.Ping(ctx)
	latency := time.Since(start)

	dbStatus := ports.DependencyStatus{
		Healthy: dbErr == nil,
		Latency: fmt.Sprintf("%dms", latency.Milliseconds()),
	}

	if dbErr != nil {
		dbStatus.Message = dbErr.Error()
	}

	dependencies["postgres"] = dbStatus

	// Cache is optional infrastructure, an unhealthy cache degrades the
	// report but does not flip the overall status.
	if h.cacheHealthChecker != nil {
		dependencies["cache"] = ports.DependencyStatus{
			Healthy: h.cacheHealthChecker.IsHealthy(ctx),
		}
	}

	overallStatus := "healthy"
	if !dbStatus.Healthy {
		overallStatus = "unhealthy"
	}

	return &HealthResult{
		Status:       overallStatus,
		Version:      config.ServiceVersion,
		Uptime:       time.Since(h.startTime).String(),
		Dependencies: dependencies,
	}, nil
}
