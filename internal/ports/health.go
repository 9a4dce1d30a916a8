package ports

import "context"

type (
	// DatabaseHealthChecker reports whether the backing store is reachable.
	DatabaseHealthChecker interface {
		Ping(ctx context.Context) error
	}

	// CacheHealthChecker reports whether the cache is reachable.
	CacheHealthChecker interface {
		IsHealthy(ctx context.Context) bool
	}

	// DependencyStatus describes the health of a single dependency.
	DependencyStatus struct {
		Healthy bool   `json:"healthy"`
		Latency string `json:"latency,omitempty"`
		Message string `json:"message,omitempty"`
	}
)
