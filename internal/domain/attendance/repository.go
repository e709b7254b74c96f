package attendance

import (
	"context"
	"time"
)

// Transactor runs fn atomically so a mark decision and its write cannot
// interleave with a concurrent submission from the same employee.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repository defines data access methods for attendance records.
type Repository interface {
	// Create inserts a new attendance record (check-in).
	Create(ctx context.Context, record Record) (Record, error)

	// Update persists changes to an existing record.
	Update(ctx context.Context, record Record) error

	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetForDate retrieves the employee's record for the given local working
	// day, if any. Used to decide between check-in and check-out.
	GetForDate(ctx context.Context, employeeID string, dateLocal string) (*Record, error)

	// ListByEmployee retrieves an employee's own history, newest first.
	ListByEmployee(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Record, int64, error)

	// ListReport retrieves records matching the admin report filters,
	// newest check-in first.
	ListReport(ctx context.Context, filter ReportFilter) ([]Record, int64, error)

	// ListPending retrieves records awaiting admin review, oldest first.
	ListPending(ctx context.Context) ([]Record, error)

	// ListCheckedInSince retrieves records whose check-in falls on or after
	// the cutoff. Feeds the dashboard aggregates.
	ListCheckedInSince(ctx context.Context, cutoff time.Time) ([]Record, error)

	// ListOpenBefore retrieves still-open records whose check-in predates
	// the cutoff. Used by the stale-session janitor.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
}
