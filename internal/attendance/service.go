package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

// 1ユーザ・1暦日の状態遷移: NoSession → CheckedIn → CheckedOut（その日の終端）
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

func (s *Service) GetToday(ctx context.Context, userID uint64) (*AttendanceResponse, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	rec, err := s.store.GetForDate(ctx, userID, s.now().Format(DateLayout))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("no attendance record for today")
	}
	res := rec.toDTO()
	return &res, nil
}

func buildLocation(lat, lng *float64, addr *string) *Location {
	// 緯度経度が揃った時だけ1オブジェクトとして保存する
	if lat == nil || lng == nil {
		return nil
	}
	address := "Unknown location"
	if addr != nil && *addr != "" {
		address = *addr
	}
	return &Location{Latitude: *lat, Longitude: *lng, Address: address}
}

// CheckIn は現在日付・現在時刻で新しい行を作る。
// 同日の行が既にあれば CONFLICT（1日1セッションの不変条件はここで守る）。
func (s *Service) CheckIn(ctx context.Context, in CheckInRequest) (*AttendanceResponse, error) {
	if in.UserID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}

	now := s.now()
	today := now.Format(DateLayout)

	existing, err := s.store.GetForDate(ctx, in.UserID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, webapi.ErrConflict("already checked in today")
	}

	rec := &AttendanceRecord{
		UserID:          in.UserID,
		CheckInDate:     today,
		CheckInTime:     now.Format(TimeLayout),
		CheckInPhotoID:  in.CheckInPhotoID,
		CheckInLocation: buildLocation(in.Latitude, in.Longitude, in.Address),
		Notes:           in.Notes,
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

// CheckOut は主キーで行を引き、チェックアウト欄を現在時刻で上書きする。
// 既にチェックアウト済みでもエラーにせず黙って置き換える（後勝ち）。
func (s *Service) CheckOut(ctx context.Context, attendanceID uint64, in CheckOutRequest) (*AttendanceResponse, error) {
	rec, err := s.store.GetByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, webapi.ErrNotFound("attendance record not found")
	}

	checkOutTime := s.now().Format(TimeLayout)
	loc := buildLocation(in.Latitude, in.Longitude, in.Address)
	if err := s.store.UpdateCheckOut(ctx, attendanceID, checkOutTime, in.CheckOutPhotoID, loc); err != nil {
		return nil, err
	}

	saved, err := s.store.GetByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, webapi.ErrInternal("updated but not found")
	}
	res := saved.toDTO()
	return &res, nil
}

func (s *Service) List(ctx context.Context, userID uint64, limit int) ([]AttendanceResponse, error) {
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
	out := make([]AttendanceResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context, userID uint64, from, to string) (*StatsResponse, error) {
	if userID == 0 {
		return nil, webapi.ErrInvalid("user_id is required")
	}
	fromT, err := time.ParseInLocation(DateLayout, from, time.UTC)
	if err != nil {
		return nil, webapi.ErrInvalid("from must be YYYY-MM-DD")
	}
	toT, err := time.ParseInLocation(DateLayout, to, time.UTC)
	if err != nil {
		return nil, webapi.ErrInvalid("to must be YYYY-MM-DD")
	}
	if toT.Before(fromT) {
		return nil, webapi.ErrInvalid("to must be >= from")
	}
	n, err := s.store.CountDays(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{UserID: userID, From: from, To: to, DaysPresent: n}, nil
}
