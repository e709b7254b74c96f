package attendance

import (
	"context"
)

// Service defines business logic for attendance operations.
type Service interface {
	// Mark processes one attendance submission: check-in if no record exists
	// for today, check-out if an open one does.
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)

	// GetMyAttendance retrieves history for the authenticated employee.
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) (ListResponse, error)

	// ListReport retrieves records for the admin report view.
	ListReport(ctx context.Context, filter ReportFilter) (ListResponse, error)

	// ListPending retrieves records awaiting admin review.
	ListPending(ctx context.Context) ([]RecordResponse, error)

	// Review approves or rejects a pending record.
	Review(ctx context.Context, req ApprovalRequest) (RecordResponse, error)
}
