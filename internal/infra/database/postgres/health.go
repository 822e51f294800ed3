package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database"
)

// Health checks the health of the database connection
func (p *Pool) Health(ctx context.Context) *database.HealthStatus {
	start := time.Now()

	status := &database.HealthStatus{
		Driver:    "postgres",
		CheckedAt: start,
		Status:    database.StatusHealthy,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		status.Status = database.StatusUnhealthy
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(start).String()
		return status
	}

	stats := p.Stat()
	status.ActiveConns = stats.AcquiredConns()
	status.IdleConns = stats.IdleConns()
	status.TotalConns = stats.TotalConns()
	status.MaxConns = stats.MaxConns()
	status.ResponseTime = time.Since(start).String()

	if stats.AcquiredConns() >= stats.MaxConns()-2 {
		status.Status = database.StatusDegraded
		status.Error = "connection pool nearly exhausted"
	}

	return status
}
