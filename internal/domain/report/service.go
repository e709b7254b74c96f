package report

import "context"

// Service computes dashboard aggregates over attendance records.
type Service interface {
	// DailyTrend returns windowDays buckets ending today, oldest first.
	DailyTrend(ctx context.Context, windowDays int) ([]TrendBucket, error)

	// ShiftDistribution tallies records per shift code.
	ShiftDistribution(ctx context.Context) (map[string]int, error)

	// LateAlerts lists approved records late beyond the alert threshold,
	// most recent check-in first.
	LateAlerts(ctx context.Context, maxResults int) ([]LateAlert, error)

	// Dashboard bundles all three aggregates in one call.
	Dashboard(ctx context.Context, windowDays int, maxAlerts int) (DashboardResponse, error)
}
