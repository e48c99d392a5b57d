package activity

import "time"

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100

	KindAttendance = "attendance"
	KindRequest    = "request"
	KindTask       = "task"
)

// 3エンティティを同一形に射影したフィード項目
type Item struct {
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
}

type Summary struct {
	TodayStatus     string `json:"today_status"` // not_checked_in | checked_in | checked_out
	WeekDaysPresent int    `json:"week_days_present"`
	PendingRequests int    `json:"pending_requests"`
	TodayTasks      int    `json:"today_tasks"`
}
