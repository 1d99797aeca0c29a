package health

import (
	"context"
	"time"
)

// Status is the aggregated health of the service.
type Status string

// Aggregated statuses.
const (
	Healthy  Status = "ok"
	Degraded Status = "degraded"
)

// CheckResult is the outcome of one check.
type CheckResult string

// Check outcomes. CheckEmpty is informational and does not degrade the service.
const (
	CheckOK    CheckResult = "ok"
	CheckEmpty CheckResult = "empty"
	CheckError CheckResult = "error"
)

// Check names as they appear in Report.Checks.
const (
	CheckDatabase = "database"
	CheckCatalog  = "catalog"
)

const checkTimeout = 2 * time.Second

// Report aggregates check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs the health checks.
type Service struct {
	db      DBPinger
	catalog CatalogSource
}

// New creates a Service. catalog may be nil, in which case only the database is checked.
func New(db DBPinger, catalog CatalogSource) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check pings the store and, when it answers, the product catalog built from it.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Status: Healthy, Checks: make(map[string]CheckResult, 2)}

	r.Checks[CheckDatabase] = s.checkDatabase(ctx)
	if s.catalog != nil {
		if r.Checks[CheckDatabase] == CheckOK {
			r.Checks[CheckCatalog] = s.checkCatalog(ctx)
		} else {
			r.Checks[CheckCatalog] = CheckError
		}
	}

	for _, res := range r.Checks {
		if res == CheckError {
			r.Status = Degraded
		}
	}
	return r
}

func (s *Service) checkDatabase(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}

func (s *Service) checkCatalog(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	products, err := s.catalog.Products(ctx, "", false)
	switch {
	case err != nil:
		return CheckError
	case len(products) == 0:
		return CheckEmpty
	default:
		return CheckOK
	}
}
