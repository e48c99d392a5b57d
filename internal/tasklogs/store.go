package tasklogs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const selectCols = `
	SELECT task_id, user_id,
		DATE_FORMAT(task_date, '%Y-%m-%d') AS task_date,
		title, description, duration_hours, status, priority, category,
		attachments, tags, created_at, updated_at
	FROM task_logs`

func scanTask(scan func(dest ...any) error) (*TaskLog, error) {
	var t TaskLog
	var duration sql.NullString
	var category sql.NullString
	var attachments, tags sql.NullString
	err := scan(
		&t.TaskID, &t.UserID, &t.TaskDate, &t.Title, &t.Description,
		&duration, &t.Status, &t.Priority, &category, &attachments, &tags,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if duration.Valid {
		v, err := strconv.ParseFloat(duration.String, 64)
		if err != nil {
			return nil, err
		}
		t.DurationHours = &v
	}
	if category.Valid {
		v := category.String
		t.Category = &v
	}
	t.Attachments = []uint64{}
	if attachments.Valid && attachments.String != "" {
		if err := json.Unmarshal([]byte(attachments.String), &t.Attachments); err != nil {
			return nil, err
		}
	}
	t.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &t.Tags); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// DECIMAL(5,2) には2桁固定の文字列で渡す
func durationArg(d *float64) any {
	if d == nil {
		return nil
	}
	return fmt.Sprintf("%.2f", *d)
}

func (s *Store) Insert(ctx context.Context, t *TaskLog) (uint64, error) {
	attachments, err := json.Marshal(t.Attachments)
	if err != nil {
		return 0, err
	}
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return 0, err
	}
	const q = `
	INSERT INTO task_logs
		(user_id, task_date, title, description, duration_hours, status, priority, category,
		 attachments, tags, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(6), UTC_TIMESTAMP(6))`
	res, err := s.db.ExecContext(ctx, q,
		t.UserID, t.TaskDate, t.Title, t.Description, durationArg(t.DurationHours),
		t.Status, t.Priority, t.Category, string(attachments), string(tags),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*TaskLog, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` WHERE task_id = ?`, id)
	return scanTask(row.Scan)
}

// taskDate が nil なら全期間、指定時はその日の完全一致
func (s *Store) ListForUser(ctx context.Context, userID uint64, taskDate *string, limit int) ([]TaskLog, error) {
	var sb strings.Builder
	args := []any{userID}

	sb.WriteString(selectCols)
	sb.WriteString(` WHERE user_id = ?`)
	if taskDate != nil && *taskDate != "" {
		sb.WriteString(` AND task_date = ?`)
		args = append(args, *taskDate)
	}
	sb.WriteString(` ORDER BY task_id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TaskLog{}
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// 動的アップデート。updated_at は常に進める。
func (s *Store) UpdateByID(ctx context.Context, id uint64, in UpdateTaskRequest) (*TaskLog, error) {
	sets := []string{}
	args := []any{}
	if in.TaskDate != nil {
		sets = append(sets, "task_date = ?")
		args = append(args, *in.TaskDate)
	}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.DurationHours != nil {
		sets = append(sets, "duration_hours = ?")
		args = append(args, durationArg(in.DurationHours))
	}
	if in.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *in.Status)
	}
	if in.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *in.Priority)
	}
	if in.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *in.Category)
	}
	if in.AttachmentIDs != nil {
		b, err := json.Marshal(*in.AttachmentIDs)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "attachments = ?")
		args = append(args, string(b))
	}
	if in.Tags != nil {
		b, err := json.Marshal(*in.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, string(b))
	}

	sets = append(sets, "updated_at = UTC_TIMESTAMP(6)")
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE task_logs SET %s WHERE task_id = ?`, strings.Join(sets, ", "))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Store) DeleteByID(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM task_logs WHERE task_id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
