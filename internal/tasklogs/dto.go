package tasklogs

import "time"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
	DateLayout       = "2006-01-02"
)

type CreateTaskRequest struct {
	UserID        uint64   `json:"user_id" binding:"required"`
	TaskDate      string   `json:"task_date" binding:"required"` // YYYY-MM-DD
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description" binding:"required,max=2000"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	Status        string   `json:"status,omitempty"`   // 省略時 in_progress
	Priority      string   `json:"priority,omitempty"` // 省略時 medium
	Category      *string  `json:"category,omitempty"`
	AttachmentIDs []uint64 `json:"attachment_ids,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// 部分更新。nil は「変更しない」、タグ・添付はリストごと置き換え（マージしない）。
type UpdateTaskRequest struct {
	TaskDate      *string   `json:"task_date,omitempty"`
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	DurationHours *float64  `json:"duration_hours,omitempty"`
	Status        *string   `json:"status,omitempty"`
	Priority      *string   `json:"priority,omitempty"`
	Category      *string   `json:"category,omitempty"`
	AttachmentIDs *[]uint64 `json:"attachment_ids,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
}

type TaskLogResponse struct {
	TaskID        uint64    `json:"task_id"`
	UserID        uint64    `json:"user_id"`
	TaskDate      string    `json:"task_date"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DurationHours *float64  `json:"duration_hours,omitempty"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Category      *string   `json:"category,omitempty"`
	Attachments   []uint64  `json:"attachments"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
