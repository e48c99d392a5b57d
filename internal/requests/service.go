package requests

import (
	"context"
	"database/sql"
	"time"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store: NewStore(db),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create は常に pending で作る。日付の前後関係（end >= start）は呼び出し側の前提条件。
func (s *Service) Create(ctx context.Context, in CreateRequestRequest) (*RequestResponse, error) {
	if in.UserID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	if !validType(in.RequestType) {
		return nil, webapi.ErrInvalid("request_type must be permission, leave or sick_leave")
	}
	if _, err := time.ParseInLocation(DateLayout, in.StartDate, time.UTC); err != nil {
		return nil, webapi.ErrInvalid("start_date must be YYYY-MM-DD")
	}
	if _, err := time.ParseInLocation(DateLayout, in.EndDate, time.UTC); err != nil {
		return nil, webapi.ErrInvalid("end_date must be YYYY-MM-DD")
	}

	docs := in.SupportingDocumentIDs
	if docs == nil {
		docs = []uint64{}
	}
	rec := &Request{
		UserID:              in.UserID,
		RequestType:         in.RequestType,
		Title:               in.Title,
		Reason:              in.Reason,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Status:              StatusPending,
		SupportingDocuments: docs,
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

// Update は提供されたフィールドだけを書き換える。
// status が来たら reviewed_at を現在時刻で刻む（reviewed_by は任意指定）。
func (s *Service) Update(ctx context.Context, id uint64, in UpdateRequestRequest) (*RequestResponse, error) {
	if in.Status != nil && !validStatus(*in.Status) {
		return nil, webapi.ErrInvalid("status must be pending, approved or rejected")
	}
	if in.StartDate != nil {
		if _, err := time.ParseInLocation(DateLayout, *in.StartDate, time.UTC); err != nil {
			return nil, webapi.ErrInvalid("start_date must be YYYY-MM-DD")
		}
	}
	if in.EndDate != nil {
		if _, err := time.ParseInLocation(DateLayout, *in.EndDate, time.UTC); err != nil {
			return nil, webapi.ErrInvalid("end_date must be YYYY-MM-DD")
		}
	}

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("request not found")
	}

	var reviewedAt *time.Time
	if in.Status != nil {
		t := s.now()
		reviewedAt = &t
	}
	updated, err := s.store.UpdateByID(ctx, id, in, reviewedAt)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, webapi.ErrNotFound("request not found")
	}
	res := updated.toDTO()
	return &res, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*RequestResponse, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("request not found")
	}
	res := rec.toDTO()
	return &res, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint64, limit int) ([]RequestResponse, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	rows, err := s.store.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RequestResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}
