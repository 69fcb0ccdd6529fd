package ports

import "context"

// HealthChecker probes one external dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
