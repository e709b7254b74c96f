package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domainattendance "github.com/presensia/attendance-portal-go/internal/domain/attendance"
	"github.com/presensia/attendance-portal-go/internal/domain/report"
	"github.com/presensia/attendance-portal-go/internal/domain/shift"
	"github.com/presensia/attendance-portal-go/internal/service/attendance"
)

// distributionWindowDays is how far back the shift distribution and late
// alert panels look.
const distributionWindowDays = 30

type ReportServiceImpl struct {
	attendanceRepo domainattendance.Repository
	location       *time.Location
	now            func() time.Time
}

func NewReportService(attendanceRepo domainattendance.Repository, location *time.Location) *ReportServiceImpl {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		location:       location,
		now:            time.Now,
	}
}

// DailyTrend implements report.Service. Returns exactly windowDays buckets
// ending today, oldest first. Records bucket by their check-in's local
// calendar date; records without a check-in are excluded.
func (s *ReportServiceImpl) DailyTrend(ctx context.Context, windowDays int) ([]report.TrendBucket, error) {
	if windowDays < 1 {
		windowDays = 1
	}

	today := s.localMidnight(s.now())
	firstDay := today.AddDate(0, 0, -(windowDays - 1))

	records, err := s.attendanceRepo.ListCheckedInSince(ctx, firstDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for trend: %w", err)
	}

	buckets := make([]report.TrendBucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		date := firstDay.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = report.TrendBucket{Date: date}
		index[date] = i
	}

	for _, record := range records {
		if record.CheckInTime == nil {
			continue
		}

		date := record.CheckInTime.In(s.location).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			continue
		}

		if record.IsApproved() {
			buckets[i].PresentCount++
		}

		if late, ok := s.lateness(record); ok && late > attendance.TrendLateThresholdMinutes {
			buckets[i].LateCount++
		}
	}

	return buckets, nil
}

// ShiftDistribution implements report.Service. Shift codes are compared
// case-insensitively; the first-seen spelling labels the tally.
func (s *ReportServiceImpl) ShiftDistribution(ctx context.Context) (map[string]int, error) {
	records, err := s.recentRecords(ctx)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int)
	labels := make(map[string]string)

	for _, record := range records {
		if record.Shift == "" {
			continue
		}

		folded := strings.ToLower(record.Shift)
		label, seen := labels[folded]
		if !seen {
			label = record.Shift
			labels[folded] = label
		}
		distribution[label]++
	}

	return distribution, nil
}

// LateAlerts implements report.Service. Approved records whose lateness
// exceeds the alert threshold, most recent check-in first.
func (s *ReportServiceImpl) LateAlerts(ctx context.Context, maxResults int) ([]report.LateAlert, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	records, err := s.recentRecords(ctx)
	if err != nil {
		return nil, err
	}

	type timedAlert struct {
		alert   report.LateAlert
		checkIn time.Time
	}

	var timed []timedAlert
	for _, record := range records {
		if !record.IsApproved() || record.CheckInTime == nil {
			continue
		}

		late, ok := s.lateness(record)
		if !ok || late <= attendance.LateAlertThresholdMinutes {
			continue
		}

		alert := report.LateAlert{
			EmployeeID:  record.EmployeeID,
			Shift:       record.Shift,
			CheckInTime: record.CheckInTime.In(s.location).Format("2006-01-02 15:04:05"),
			MinutesLate: late,
		}
		if record.EmployeeName != nil {
			alert.Name = *record.EmployeeName
		}

		timed = append(timed, timedAlert{alert: alert, checkIn: *record.CheckInTime})
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].checkIn.After(timed[j].checkIn)
	})

	if len(timed) > maxResults {
		timed = timed[:maxResults]
	}

	alerts := make([]report.LateAlert, 0, len(timed))
	for _, entry := range timed {
		alerts = append(alerts, entry.alert)
	}

	return alerts, nil
}

// Dashboard implements report.Service.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, windowDays int, maxAlerts int) (report.DashboardResponse, error) {
	trend, err := s.DailyTrend(ctx, windowDays)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	distribution, err := s.ShiftDistribution(ctx)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	alerts, err := s.LateAlerts(ctx, maxAlerts)
	if err != nil {
		return report.DashboardResponse{}, err
	}

	return report.DashboardResponse{
		DailyTrend:        trend,
		ShiftDistribution: distribution,
		LateAlerts:        alerts,
	}, nil
}

func (s *ReportServiceImpl) recentRecords(ctx context.Context) ([]domainattendance.Record, error) {
	cutoff := s.localMidnight(s.now()).AddDate(0, 0, -(distributionWindowDays - 1))

	records, err := s.attendanceRepo.ListCheckedInSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent records: %w", err)
	}

	return records, nil
}

func (s *ReportServiceImpl) localMidnight(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
}

// lateness computes a record's minutes late. Records whose shift timing
// cannot be resolved are excluded from lateness, not treated as errors.
func (s *ReportServiceImpl) lateness(record domainattendance.Record) (int, bool) {
	if record.CheckInTime == nil {
		return 0, false
	}

	window, err := shift.Resolve(record.Shift)
	if err != nil {
		return 0, false
	}

	return attendance.Lateness(record.CheckInTime.In(s.location), window), true
}
