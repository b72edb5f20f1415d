package database

import (
	"context"
	"time"

	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// QueryMetrics describes one measured database operation.
type QueryMetrics struct {
	Operation    string
	Duration     time.Duration
	RowsAffected int64
	RowsReturned int64
	Failed       bool
	ErrorMessage string
}

// MetricsCollector times database operations and flags the slow ones.
type MetricsCollector struct {
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider) *MetricsCollector {
	return &MetricsCollector{
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MeasureQuery runs fn and records its duration. Anything slower than
// 100ms is logged; settlement commits should stay well under that.
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation string, fn func() (int64, error)) (*QueryMetrics, error) {
	start := c.timeProvider.Now()

	rowsAffected, err := fn()

	metrics := &QueryMetrics{
		Operation:    operation,
		Duration:     c.timeProvider.Now().Sub(start),
		RowsAffected: rowsAffected,
		Failed:       err != nil,
	}

	if err != nil {
		metrics.ErrorMessage = err.Error()
	}

	if metrics.Duration > 100*time.Millisecond {
		c.logger.Warn("Slow database query detected", map[string]any{
			"operation":     operation,
			"duration_ms":   metrics.Duration.Milliseconds(),
			"rows_affected": rowsAffected,
			"failed":        metrics.Failed,
			"error_message": metrics.ErrorMessage,
		})
	}

	return metrics, err
}
