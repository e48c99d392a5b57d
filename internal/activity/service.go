package activity

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/appdotbuilder/attendance-task-logger/internal/attendance"
	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
	"github.com/appdotbuilder/attendance-task-logger/internal/requests"
	"github.com/appdotbuilder/attendance-task-logger/internal/tasklogs"
)

// 読み取り専用のビュー合成。保存もキャッシュもせず毎回計算し直す。
type Service struct {
	db  *sql.DB
	now func() time.Time
}

func NewService(sqldb *sql.DB) *Service {
	return &Service{
		db:  sqldb,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Recent は3種のレコードを各 limit 件ずつ同一スナップショットで引き、
// タイムスタンプ降順にマージして limit 件に切り詰める。
func (s *Service) Recent(ctx context.Context, userID uint64, limit int) ([]Item, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	var items []Item
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		att, err := attendance.NewStore(tx).ListForUser(ctx, userID, limit)
		if err != nil {
			return err
		}
		reqs, err := requests.NewStore(tx).ListForUser(ctx, userID, limit)
		if err != nil {
			return err
		}
		tasks, err := tasklogs.NewStore(tx).ListForUser(ctx, userID, nil, limit)
		if err != nil {
			return err
		}
		items = mergeFeed(att, reqs, tasks, limit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func mergeFeed(att []attendance.AttendanceRecord, reqs []requests.Request, tasks []tasklogs.TaskLog, limit int) []Item {
	items := make([]Item, 0, len(att)+len(reqs)+len(tasks))
	for i := 0; i < len(att); i++ {
		items = append(items, projectAttendance(att[i]))
	}
	for i := 0; i < len(reqs); i++ {
		items = append(items, projectRequest(reqs[i]))
	}
	for i := 0; i < len(tasks); i++ {
		items = append(items, projectTask(tasks[i]))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func projectAttendance(a attendance.AttendanceRecord) Item {
	status := "checked_in"
	if a.CheckOutTime != nil {
		status = "checked_out"
	}
	return Item{
		Timestamp:   a.CreatedAt,
		Kind:        KindAttendance,
		Title:       "Attendance Record",
		Description: fmt.Sprintf("Checked in at %s on %s", clock(a.CheckInDate, a.CheckInTime), day(a.CheckInDate)),
		Icon:        "schedule",
		Color:       "blue",
		Status:      status,
	}
}

var requestColors = map[string]string{
	requests.StatusPending:  "orange",
	requests.StatusApproved: "green",
	requests.StatusRejected: "red",
}

func projectRequest(r requests.Request) Item {
	color, ok := requestColors[r.Status]
	if !ok {
		color = "gray"
	}
	return Item{
		Timestamp:   r.CreatedAt,
		Kind:        KindRequest,
		Title:       r.Title,
		Description: humanize(r.RequestType) + " - " + humanize(r.Status),
		Icon:        "send",
		Color:       color,
		Status:      r.Status,
	}
}

func projectTask(t tasklogs.TaskLog) Item {
	return Item{
		Timestamp:   t.CreatedAt,
		Kind:        KindTask,
		Title:       t.Title,
		Description: humanize(t.Status) + " - " + day(t.TaskDate),
		Icon:        "task_alt",
		Color:       "blue",
		Status:      t.Status,
	}
}

// "sick_leave" → "Sick Leave"
func humanize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// "09:15:00" → "09:15 AM"
func clock(date, tod string) string {
	t, err := time.Parse(attendance.DateLayout+" "+attendance.TimeLayout, date+" "+tod)
	if err != nil {
		return tod
	}
	return t.Format("03:04 PM")
}

// "2024-06-03" → "Jun 03"
func day(date string) string {
	t, err := time.Parse(attendance.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02")
}

// GetSummary はダッシュボード向けの当日サマリを返す。
func (s *Service) GetSummary(ctx context.Context, userID uint64) (*Summary, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}

	now := s.now()
	today := now.Format(attendance.DateLayout)
	// 週は月曜始まり
	weekStart := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7)).Format(attendance.DateLayout)

	var sum Summary
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		attStore := attendance.NewStore(tx)

		todayRec, err := attStore.GetForDate(ctx, userID, today)
		if err != nil {
			return err
		}
		switch {
		case todayRec == nil:
			sum.TodayStatus = "not_checked_in"
		case todayRec.CheckOutTime != nil:
			sum.TodayStatus = "checked_out"
		default:
			sum.TodayStatus = "checked_in"
		}

		attRecords, err := attStore.ListForUser(ctx, userID, 100)
		if err != nil {
			return err
		}
		for i := 0; i < len(attRecords); i++ {
			// ISO形式なので文字列比較で足りる
			if attRecords[i].CheckInDate >= weekStart {
				sum.WeekDaysPresent++
			}
		}

		reqs, err := requests.NewStore(tx).ListForUser(ctx, userID, 50)
		if err != nil {
			return err
		}
		for i := 0; i < len(reqs); i++ {
			if reqs[i].Status == requests.StatusPending {
				sum.PendingRequests++
			}
		}

		tasks, err := tasklogs.NewStore(tx).ListForUser(ctx, userID, &today, 100)
		if err != nil {
			return err
		}
		sum.TodayTasks = len(tasks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
