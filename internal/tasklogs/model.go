package tasklogs

import "time"

// status / priority は自由文字列。慣例値のみ定数化しておく。
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on_hold"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// 日次の作業ログ。作成・部分更新・物理削除あり。
type TaskLog struct {
	TaskID        uint64
	UserID        uint64
	TaskDate      string // YYYY-MM-DD
	Title         string
	Description   string
	DurationHours *float64 // DECIMAL(5,2)
	Status        string
	Priority      string
	Category      *string
	Attachments   []uint64 // file_id の不透明参照リスト
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t TaskLog) toDTO() TaskLogResponse {
	return TaskLogResponse{
		TaskID:        t.TaskID,
		UserID:        t.UserID,
		TaskDate:      t.TaskDate,
		Title:         t.Title,
		Description:   t.Description,
		DurationHours: t.DurationHours,
		Status:        t.Status,
		Priority:      t.Priority,
		Category:      t.Category,
		Attachments:   t.Attachments,
		Tags:          t.Tags,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
