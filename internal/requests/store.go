package requests

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const selectCols = `
	SELECT request_id, user_id, request_type, title, reason,
		DATE_FORMAT(start_date, '%Y-%m-%d') AS start_date,
		DATE_FORMAT(end_date, '%Y-%m-%d') AS end_date,
		status, supporting_documents, manager_notes, reviewed_by, reviewed_at,
		created_at, updated_at
	FROM requests`

func scanRequest(scan func(dest ...any) error) (*Request, error) {
	var r Request
	var docs sql.NullString
	var notes sql.NullString
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime
	err := scan(
		&r.RequestID, &r.UserID, &r.RequestType, &r.Title, &r.Reason,
		&r.StartDate, &r.EndDate, &r.Status, &docs, &notes, &reviewedBy, &reviewedAt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.SupportingDocuments = []uint64{}
	if docs.Valid && docs.String != "" {
		if err := json.Unmarshal([]byte(docs.String), &r.SupportingDocuments); err != nil {
			return nil, err
		}
	}
	if notes.Valid {
		v := notes.String
		r.ManagerNotes = &v
	}
	if reviewedBy.Valid {
		v := uint64(reviewedBy.Int64)
		r.ReviewedBy = &v
	}
	if reviewedAt.Valid {
		v := reviewedAt.Time
		r.ReviewedAt = &v
	}
	return &r, nil
}

func (s *Store) Insert(ctx context.Context, r *Request) (uint64, error) {
	docs, err := json.Marshal(r.SupportingDocuments)
	if err != nil {
		return 0, err
	}
	const q = `
	INSERT INTO requests
		(user_id, request_type, title, reason, start_date, end_date, status, supporting_documents,
		 created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(6), UTC_TIMESTAMP(6))`
	res, err := s.db.ExecContext(ctx, q,
		r.UserID, r.RequestType, r.Title, r.Reason, r.StartDate, r.EndDate, r.Status, string(docs),
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

func (s *Store) GetByID(ctx context.Context, id uint64) (*Request, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` WHERE request_id = ?`, id)
	return scanRequest(row.Scan)
}

func (s *Store) ListForUser(ctx context.Context, userID uint64, limit int) ([]Request, error) {
	rows, err := s.db.QueryContext(ctx,
		selectCols+` WHERE user_id = ? ORDER BY request_id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		r, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// 動的アップデート。提供されたフィールドだけ SET し、updated_at は常に進める。
func (s *Store) UpdateByID(ctx context.Context, id uint64, in UpdateRequestRequest, reviewedAt *time.Time) (*Request, error) {
	sets := []string{}
	args := []any{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Reason != nil {
		sets = append(sets, "reason = ?")
		args = append(args, *in.Reason)
	}
	if in.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *in.StartDate)
	}
	if in.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *in.EndDate)
	}
	if in.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *in.Status)
	}
	if in.ManagerNotes != nil {
		sets = append(sets, "manager_notes = ?")
		args = append(args, *in.ManagerNotes)
	}
	if in.ReviewedBy != nil {
		sets = append(sets, "reviewed_by = ?")
		args = append(args, *in.ReviewedBy)
	}
	if reviewedAt != nil {
		sets = append(sets, "reviewed_at = ?")
		args = append(args, *reviewedAt)
	}

	sets = append(sets, "updated_at = UTC_TIMESTAMP(6)")
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE requests SET %s WHERE request_id = ?`, strings.Join(sets, ", "))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
