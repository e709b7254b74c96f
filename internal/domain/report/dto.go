package report

// TrendBucket is one day of the attendance trend chart.
type TrendBucket struct {
	Date         string `json:"date"` // YYYY-MM-DD, local
	PresentCount int    `json:"present_count"`
	LateCount    int    `json:"late_count"`
}

// LateAlert is one entry of the recent-latecomers panel.
type LateAlert struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name,omitempty"`
	Shift       string `json:"shift"`
	CheckInTime string `json:"check_in_time"`
	MinutesLate int    `json:"minutes_late"`
}

// DashboardResponse bundles the admin dashboard aggregates.
type DashboardResponse struct {
	DailyTrend        []TrendBucket  `json:"daily_trend"`
	ShiftDistribution map[string]int `json:"shift_distribution"`
	LateAlerts        []LateAlert    `json:"late_alerts"`
}
