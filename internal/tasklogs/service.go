package tasklogs

import (
	"context"
	"database/sql"
	"time"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Service struct {
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

func (s *Service) Create(ctx context.Context, in CreateTaskRequest) (*TaskLogResponse, error) {
	if in.UserID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	if _, err := time.ParseInLocation(DateLayout, in.TaskDate, time.UTC); err != nil {
		return nil, webapi.ErrInvalid("task_date must be YYYY-MM-DD")
	}
	status := in.Status
	if status == "" {
		status = StatusInProgress
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	attachments := in.AttachmentIDs
	if attachments == nil {
		attachments = []uint64{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	rec := &TaskLog{
		UserID:        in.UserID,
		TaskDate:      in.TaskDate,
		Title:         in.Title,
		Description:   in.Description,
		DurationHours: in.DurationHours,
		Status:        status,
		Priority:      priority,
		Category:      in.Category,
		Attachments:   attachments,
		Tags:          tags,
	}
	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, webapi.ErrInternal("inserted but not found")
	}
	res := saved.toDTO()
	return &res, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateTaskRequest) (*TaskLogResponse, error) {
	if in.TaskDate != nil {
		if _, err := time.ParseInLocation(DateLayout, *in.TaskDate, time.UTC); err != nil {
			return nil, webapi.ErrInvalid("task_date must be YYYY-MM-DD")
		}
	}
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("task log not found")
	}
	updated, err := s.store.UpdateByID(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, webapi.ErrNotFound("task log not found")
	}
	res := updated.toDTO()
	return &res, nil
}

// Delete は行が消えたかどうかだけ返す。存在しない id はエラーではない。
func (s *Service) Delete(ctx context.Context, id uint64) (bool, error) {
	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*TaskLogResponse, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("task log not found")
	}
	res := rec.toDTO()
	return &res, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint64, taskDate *string, limit int) ([]TaskLogResponse, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	if taskDate != nil && *taskDate != "" {
		if _, err := time.ParseInLocation(DateLayout, *taskDate, time.UTC); err != nil {
			return nil, webapi.ErrInvalid("date must be YYYY-MM-DD")
		}
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	rows, err := s.store.ListForUser(ctx, userID, taskDate, limit)
	if err != nil {
		return nil, err
	}
	out := make([]TaskLogResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}
