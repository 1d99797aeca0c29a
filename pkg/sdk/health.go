package assetsearch

import (
	"context"

	healthuc "github.com/kailas-cloud/assetsearch/internal/usecase/health"
)

// HealthStatus is the outcome of the server-side checks.
// Checks maps a check name ("database", "catalog") to "ok", "empty" or "error".
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Healthy reports whether every check passed. An empty catalog counts as passing.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Health checks the store and the product catalog built from it.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	out := HealthStatus{Status: string(report.Status), Checks: make(map[string]string, len(report.Checks))}
	for name, res := range report.Checks {
		out.Checks[name] = string(res)
	}
	return out
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
