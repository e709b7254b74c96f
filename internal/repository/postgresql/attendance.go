package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/presensia/attendance-portal-go/internal/domain/attendance"
	"github.com/presensia/attendance-portal-go/internal/pkg/database"
)

const attendanceColumns = `
	a.id, a.employee_id, a.shift, a.working_day,
	a.check_in_time, a.check_out_time,
	a.check_in_latitude, a.check_in_longitude,
	a.check_out_latitude, a.check_out_longitude,
	a.check_in_image_path, a.check_out_image_path,
	a.work_hours, a.late_minutes,
	a.system_status, a.admin_status, a.admin_remarks, a.warning_message,
	a.created_at, a.updated_at,
	e.name
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Shift, &r.WorkingDay,
		&r.CheckInTime, &r.CheckOutTime,
		&r.CheckInLatitude, &r.CheckInLongitude,
		&r.CheckOutLatitude, &r.CheckOutLongitude,
		&r.CheckInImagePath, &r.CheckOutImagePath,
		&r.WorkHours, &r.LateMinutes,
		&r.SystemStatus, &r.AdminStatus, &r.AdminRemarks, &r.WarningMessage,
		&r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName,
	)
	return r, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, shift, working_day,
			check_in_time, check_in_latitude, check_in_longitude, check_in_image_path,
			late_minutes, system_status, admin_status, warning_message
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Shift,
		record.WorkingDay,
		record.CheckInTime,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.CheckInImagePath,
		record.LateMinutes,
		record.SystemStatus,
		record.AdminStatus,
		record.WarningMessage,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_out_time = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			check_out_image_path = $5,
			work_hours = $6,
			system_status = $7,
			admin_status = $8,
			admin_remarks = $9,
			warning_message = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID,
		record.CheckOutTime,
		record.CheckOutLatitude,
		record.CheckOutLongitude,
		record.CheckOutImagePath,
		record.WorkHours,
		record.SystemStatus,
		record.AdminStatus,
		record.AdminRemarks,
		record.WarningMessage,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.id = $1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, err
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

// GetForDate implements attendance.Repository.
func (a *attendanceRepository) GetForDate(ctx context.Context, employeeID string, dateLocal string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.working_day = $2
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, dateLocal))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this working day
		}
		return nil, fmt.Errorf("failed to get attendance for date: %w", err)
	}

	return &record, nil
}

// ListByEmployee implements attendance.Repository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.working_day >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.working_day <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.check_in_time DESC
	` + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListReport implements attendance.Repository.
func (a *attendanceRepository) ListReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Shift != nil && *filter.Shift != "" {
		baseWhere += fmt.Sprintf(" AND LOWER(a.shift) = LOWER($%d)", argIdx)
		args = append(args, *filter.Shift)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.working_day >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.working_day <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count report records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.check_in_time DESC
	` + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list report records: %w", err)
	}

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListPending implements attendance.Repository.
func (a *attendanceRepository) ListPending(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.admin_status = 'pending'
		ORDER BY a.check_in_time ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending records: %w", err)
	}

	return collectRecords(rows)
}

// ListCheckedInSince implements attendance.Repository.
func (a *attendanceRepository) ListCheckedInSince(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.check_in_time >= $1
		ORDER BY a.check_in_time DESC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list records since cutoff: %w", err)
	}

	return collectRecords(rows)
}

// ListOpenBefore implements attendance.Repository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.check_out_time IS NULL
		  AND a.check_in_time IS NOT NULL
		  AND a.check_in_time < $1
		ORDER BY a.check_in_time ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open records: %w", err)
	}

	return collectRecords(rows)
}
