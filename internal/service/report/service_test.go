package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainattendance "github.com/presensia/attendance-portal-go/internal/domain/attendance"
)

type fakeRepo struct {
	records []domainattendance.Record
}

func (r *fakeRepo) Create(ctx context.Context, record domainattendance.Record) (domainattendance.Record, error) {
	return record, nil
}
func (r *fakeRepo) Update(ctx context.Context, record domainattendance.Record) error { return nil }
func (r *fakeRepo) GetByID(ctx context.Context, id string) (domainattendance.Record, error) {
	return domainattendance.Record{}, nil
}
func (r *fakeRepo) GetForDate(ctx context.Context, employeeID string, dateLocal string) (*domainattendance.Record, error) {
	return nil, nil
}
func (r *fakeRepo) ListByEmployee(ctx context.Context, employeeID string, filter domainattendance.MyAttendanceFilter) ([]domainattendance.Record, int64, error) {
	return nil, 0, nil
}
func (r *fakeRepo) ListReport(ctx context.Context, filter domainattendance.ReportFilter) ([]domainattendance.Record, int64, error) {
	return nil, 0, nil
}
func (r *fakeRepo) ListPending(ctx context.Context) ([]domainattendance.Record, error) {
	return nil, nil
}
func (r *fakeRepo) ListCheckedInSince(ctx context.Context, cutoff time.Time) ([]domainattendance.Record, error) {
	var out []domainattendance.Record
	for _, record := range r.records {
		if record.CheckInTime != nil && !record.CheckInTime.Before(cutoff) {
			out = append(out, record)
		}
	}
	return out, nil
}
func (r *fakeRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]domainattendance.Record, error) {
	return nil, nil
}

func newTestService(records []domainattendance.Record, now time.Time) *ReportServiceImpl {
	svc := NewReportService(&fakeRepo{records: records}, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func approvedRecord(employeeID, shiftCode string, checkIn time.Time) domainattendance.Record {
	return domainattendance.Record{
		EmployeeID:   employeeID,
		Shift:        shiftCode,
		CheckInTime:  &checkIn,
		SystemStatus: domainattendance.SystemStatusPresent,
		AdminStatus:  domainattendance.AdminStatusApproved,
	}
}

func TestDailyTrendExactBucketCount(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(nil, now)

	trend, err := svc.DailyTrend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, trend, 7)

	// Oldest first and the last bucket is today.
	assert.Equal(t, "2024-03-09", trend[0].Date)
	assert.Equal(t, "2024-03-15", trend[6].Date)
	for i := 1; i < len(trend); i++ {
		assert.Less(t, trend[i-1].Date, trend[i].Date)
	}
}

func TestDailyTrendCounts(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		// Approved, on time: present only.
		approvedRecord("EMP-1", "general", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)),
		// Approved, 90 minutes late: present and late.
		approvedRecord("EMP-2", "general", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)),
		// Pending, 90 minutes late: late only.
		{
			EmployeeID:  "EMP-3",
			Shift:       "general",
			CheckInTime: timePtr(time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)),
			AdminStatus: domainattendance.AdminStatusPending,
		},
		// No check-in at all: excluded entirely.
		{
			EmployeeID:  "EMP-4",
			Shift:       "general",
			AdminStatus: domainattendance.AdminStatusApproved,
		},
	}

	svc := newTestService(records, now)
	trend, err := svc.DailyTrend(context.Background(), 7)
	require.NoError(t, err)

	today := trend[6]
	assert.Equal(t, "2024-03-15", today.Date)
	assert.Equal(t, 2, today.PresentCount)
	assert.Equal(t, 1, today.LateCount)

	yesterday := trend[5]
	assert.Equal(t, 0, yesterday.PresentCount)
	assert.Equal(t, 1, yesterday.LateCount)
}

func TestDailyTrendLateThresholdIsOneHour(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		// 40 minutes late: above the 15-minute alert threshold but below
		// the 1-hour trend threshold.
		approvedRecord("EMP-1", "general", time.Date(2024, 3, 15, 9, 40, 0, 0, time.UTC)),
	}

	svc := newTestService(records, now)
	trend, err := svc.DailyTrend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, 1, trend[0].PresentCount)
	assert.Equal(t, 0, trend[0].LateCount)
}

func TestDailyTrendUnresolvableShiftStillCounted(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		approvedRecord("EMP-1", "not-a-shift", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)),
	}

	svc := newTestService(records, now)
	trend, err := svc.DailyTrend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, trend, 1)

	// Present, but excluded from the lateness tally rather than failing.
	assert.Equal(t, 1, trend[0].PresentCount)
	assert.Equal(t, 0, trend[0].LateCount)
}

func TestShiftDistribution(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		approvedRecord("EMP-1", "A", time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)),
		approvedRecord("EMP-2", "A", time.Date(2024, 3, 15, 6, 5, 0, 0, time.UTC)),
		approvedRecord("EMP-3", "B", time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)),
	}

	svc := newTestService(records, now)
	distribution, err := svc.ShiftDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, distribution)
}

func TestShiftDistributionCaseInsensitive(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		approvedRecord("EMP-1", "General", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)),
		approvedRecord("EMP-2", "general", time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)),
	}

	svc := newTestService(records, now)
	distribution, err := svc.ShiftDistribution(context.Background())
	require.NoError(t, err)

	// Folded into one tally labeled by the first-seen spelling.
	assert.Equal(t, map[string]int{"General": 2}, distribution)
}

func TestLateAlerts(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		// 20 minutes late, approved: alerted.
		approvedRecord("EMP-1", "general", time.Date(2024, 3, 14, 9, 20, 0, 0, time.UTC)),
		// 90 minutes late, approved, more recent: alerted first.
		approvedRecord("EMP-2", "general", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)),
		// 10 minutes late: under the threshold.
		approvedRecord("EMP-3", "general", time.Date(2024, 3, 15, 9, 10, 0, 0, time.UTC)),
		// 30 minutes late but still pending: excluded.
		{
			EmployeeID:  "EMP-4",
			Shift:       "general",
			CheckInTime: timePtr(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)),
			AdminStatus: domainattendance.AdminStatusPending,
		},
	}

	svc := newTestService(records, now)
	alerts, err := svc.LateAlerts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, "EMP-2", alerts[0].EmployeeID)
	assert.Equal(t, 90, alerts[0].MinutesLate)
	assert.Equal(t, "EMP-1", alerts[1].EmployeeID)
	assert.Equal(t, 20, alerts[1].MinutesLate)
}

func TestLateAlertsTruncated(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	var records []domainattendance.Record
	for day := 1; day <= 15; day++ {
		records = append(records, approvedRecord("EMP-1", "general",
			time.Date(2024, 3, day, 10, 30, 0, 0, time.UTC)))
	}

	svc := newTestService(records, now)
	alerts, err := svc.LateAlerts(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, alerts, 10)

	// Most recent first.
	assert.Equal(t, "2024-03-15 10:30:00", alerts[0].CheckInTime)
}

func TestDashboardBundlesAggregates(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	records := []domainattendance.Record{
		approvedRecord("EMP-1", "A", time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC)),
	}

	svc := newTestService(records, now)
	dashboard, err := svc.Dashboard(context.Background(), 7, 10)
	require.NoError(t, err)

	assert.Len(t, dashboard.DailyTrend, 7)
	assert.Equal(t, map[string]int{"A": 1}, dashboard.ShiftDistribution)
	require.Len(t, dashboard.LateAlerts, 1)
	assert.Equal(t, 90, dashboard.LateAlerts[0].MinutesLate)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
