package database

import "time"

// HealthStatus represents database health status
type HealthStatus struct {
	Status       string    `json:"status"`        // "healthy", "degraded", "unhealthy"
	Driver       string    `json:"driver"`        // "postgres", "sqlite"
	ResponseTime string    `json:"response_time"` // e.g., "5ms"
	ActiveConns  int32     `json:"active_conns"`
	IdleConns    int32     `json:"idle_conns"`
	TotalConns   int32     `json:"total_conns"`
	MaxConns     int32     `json:"max_conns"`
	CheckedAt    time.Time `json:"checked_at"`
	Error        string    `json:"error,omitempty"`
}

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)
