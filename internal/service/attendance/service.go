package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/presensia/attendance-portal-go/internal/domain/attendance"
	"github.com/presensia/attendance-portal-go/internal/domain/employee"
	"github.com/presensia/attendance-portal-go/internal/domain/shift"
	"github.com/presensia/attendance-portal-go/internal/pkg/utils"
	"github.com/presensia/attendance-portal-go/internal/service/file"
)

// baseLocationRadiusMeters is how far from the pinned base location a
// submission may originate before it gets a distance warning. The record is
// still accepted; the warning is for the reviewing admin.
const baseLocationRadiusMeters = 250.0

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	fileService    file.FileService
	transactor     attendance.Transactor
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	fileService file.FileService,
	transactor attendance.Transactor,
	location *time.Location,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		fileService:    fileService,
		transactor:     transactor,
		location:       location,
		now:            time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// Mark implements attendance.Service. The first submission of a working day
// is the check-in, the second closes the record as a check-out.
func (a *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MarkResponse{}, err
	}

	emp, err := a.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MarkResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.MarkResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if !emp.IsActive() {
		return attendance.MarkResponse{}, attendance.ErrEmployeeInactive
	}

	nowLocal := a.now().In(a.location)

	window, shiftErr := shift.Resolve(emp.Shift)

	// The working day anchors to the shift start, so an after-midnight
	// check-out on an overnight shift lands on the same record as its
	// check-in. An unreadable shift falls back to the calendar date.
	dateLocal := nowLocal.Format("2006-01-02")
	if shiftErr == nil {
		dateLocal = window.StartFor(nowLocal).Format("2006-01-02")
	}

	// The employee row lock serializes concurrent marks: without it, two
	// simultaneous submissions would both see no record and both check in.
	var response attendance.MarkResponse
	txErr := a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.employeeRepo.LockByEmployeeID(ctx, emp.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		existing, err := a.attendanceRepo.GetForDate(ctx, emp.EmployeeID, dateLocal)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to get attendance for date: %w", err)
		}

		if existing == nil {
			response, err = a.checkIn(ctx, req, emp, window, shiftErr, nowLocal)
			return err
		}

		if !existing.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}

		response, err = a.checkOut(ctx, req, emp, *existing, nowLocal)
		return err
	})
	if txErr != nil {
		return attendance.MarkResponse{}, txErr
	}

	return response, nil
}

func (a *AttendanceServiceImpl) checkIn(ctx context.Context, req attendance.MarkRequest, emp employee.Employee, window shift.Window, shiftErr error, nowLocal time.Time) (attendance.MarkResponse, error) {
	status := attendance.SystemStatusPresent
	var lateMinutes *int
	var warnings []string

	if shiftErr != nil {
		status = attendance.SystemStatusFlagged
		warnings = append(warnings, fmt.Sprintf("Shift timing %q could not be read; lateness was not computed.", emp.Shift))
	} else {
		late := Lateness(nowLocal, window)
		lateMinutes = &late

		if late > LateAlertThresholdMinutes {
			status = attendance.SystemStatusLate
			warnings = append(warnings, fmt.Sprintf("Checked in %d minutes after shift start.", late))
		}
	}

	if warning := a.distanceWarning(emp, req.Latitude, req.Longitude); warning != "" {
		warnings = append(warnings, warning)
	}

	imagePath, err := a.fileService.UploadLiveImage(ctx, emp.EmployeeID, nowLocal, req.File, req.FileHeader.Filename, "check_in")
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to upload live image: %w", err)
	}

	dateLocal := nowLocal.Format("2006-01-02")
	if shiftErr == nil {
		dateLocal = window.StartFor(nowLocal).Format("2006-01-02")
	}

	checkInTime := nowLocal
	record := attendance.Record{
		EmployeeID:       emp.EmployeeID,
		Shift:            emp.Shift,
		WorkingDay:       dateLocal,
		CheckInTime:      &checkInTime,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		CheckInImagePath: &imagePath,
		LateMinutes:      lateMinutes,
		SystemStatus:     status,
		AdminStatus:      attendance.AdminStatusPending,
	}

	warning := joinWarnings(warnings)
	record.WarningMessage = warning

	if _, err := a.attendanceRepo.Create(ctx, record); err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.MarkResponse{
		Message: "Check-in recorded. Awaiting admin approval.",
		Warning: warning,
	}, nil
}

func (a *AttendanceServiceImpl) checkOut(ctx context.Context, req attendance.MarkRequest, emp employee.Employee, record attendance.Record, nowLocal time.Time) (attendance.MarkResponse, error) {
	checkOutTime := nowLocal
	workHours := WorkHours(record.CheckInTime.In(a.location), &checkOutTime)

	var warnings []string
	if workHours != nil {
		workedMinutes := int(*workHours * 60)
		if workedMinutes < shift.RequiredWorkMinutes {
			warnings = append(warnings, fmt.Sprintf(
				"Worked %.2f hours, below the scheduled %d hours %d minutes.",
				*workHours, shift.RequiredWorkMinutes/60, shift.RequiredWorkMinutes%60))
		}
	}

	if warning := a.distanceWarning(emp, req.Latitude, req.Longitude); warning != "" {
		warnings = append(warnings, warning)
	}

	imagePath, err := a.fileService.UploadLiveImage(ctx, emp.EmployeeID, nowLocal, req.File, req.FileHeader.Filename, "check_out")
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to upload live image: %w", err)
	}

	record.CheckOutTime = &checkOutTime
	record.CheckOutLatitude = &req.Latitude
	record.CheckOutLongitude = &req.Longitude
	record.CheckOutImagePath = &imagePath
	record.WorkHours = workHours

	// A check-out warning is appended to whatever the check-in left.
	if warning := joinWarnings(warnings); warning != nil {
		if record.WarningMessage != nil && *record.WarningMessage != "" {
			combined := *record.WarningMessage + " " + *warning
			record.WarningMessage = &combined
		} else {
			record.WarningMessage = warning
		}
	}

	if err := a.attendanceRepo.Update(ctx, record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MarkResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.MarkResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.MarkResponse{
		Message:   "Check-out recorded.",
		WorkHours: workHours,
		Warning:   joinWarnings(warnings),
	}, nil
}

// distanceWarning compares the submitted coordinates against the employee's
// pinned base location.
func (a *AttendanceServiceImpl) distanceWarning(emp employee.Employee, latitude, longitude float64) string {
	if !emp.HasBaseLocation() {
		return ""
	}

	distance := utils.CalculateHaversineDistance(latitude, longitude, *emp.BaseLocationLat, *emp.BaseLocationLon)
	if distance <= baseLocationRadiusMeters {
		return ""
	}

	name := "the registered location"
	if emp.BaseLocationName != nil && *emp.BaseLocationName != "" {
		name = *emp.BaseLocationName
	}

	return fmt.Sprintf("Marked %.0f meters away from %s.", distance, name)
}

func joinWarnings(warnings []string) *string {
	if len(warnings) == 0 {
		return nil
	}

	joined := warnings[0]
	for _, w := range warnings[1:] {
		joined += " " + w
	}
	return &joined
}

// GetMyAttendance implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := a.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListReport implements attendance.Service.
func (a *AttendanceServiceImpl) ListReport(ctx context.Context, filter attendance.ReportFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := a.attendanceRepo.ListReport(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list report: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListPending implements attendance.Service.
func (a *AttendanceServiceImpl) ListPending(ctx context.Context) ([]attendance.RecordResponse, error) {
	records, err := a.attendanceRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}

	return responses, nil
}

// Review implements attendance.Service.
func (a *AttendanceServiceImpl) Review(ctx context.Context, req attendance.ApprovalRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if record.AdminStatus != attendance.AdminStatusPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	record.AdminStatus = req.Status
	record.AdminRemarks = req.Remarks

	if err := a.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

func buildListResponse(records []attendance.Record, total int64, page, limit int) attendance.ListResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Records:    responses,
	}
}

func mapRecordToResponse(record attendance.Record) attendance.RecordResponse {
	response := attendance.RecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		Shift:             record.Shift,
		CheckInTime:       timePtrToString(record.CheckInTime),
		CheckOutTime:      timePtrToString(record.CheckOutTime),
		WorkHours:         record.WorkHours,
		LateMinutes:       record.LateMinutes,
		SystemStatus:      record.SystemStatus,
		AdminStatus:       record.AdminStatus,
		WarningMessage:    record.WarningMessage,
		CheckInImagePath:  record.CheckInImagePath,
		CheckOutImagePath: record.CheckOutImagePath,
		CreatedAt:         record.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if record.EmployeeName != nil {
		response.Name = *record.EmployeeName
	}

	return response
}
