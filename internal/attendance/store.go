package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

// DATE/TIME は文字列で受ける（DATE_FORMAT / TIME_FORMAT 前提）
const selectCols = `
	SELECT attendance_id, user_id,
		DATE_FORMAT(check_in_date, '%Y-%m-%d') AS check_in_date,
		TIME_FORMAT(check_in_time, '%H:%i:%s') AS check_in_time,
		check_in_photo_id, check_in_location,
		TIME_FORMAT(check_out_time, '%H:%i:%s') AS check_out_time,
		check_out_photo_id, check_out_location,
		notes, created_at, updated_at
	FROM attendance_records`

type attendanceRow struct {
	AttendanceID     uint64
	UserID           uint64
	CheckInDate      string
	CheckInTime      string
	CheckInPhotoID   sql.NullInt64
	CheckInLocation  sql.NullString
	CheckOutTime     sql.NullString
	CheckOutPhotoID  sql.NullInt64
	CheckOutLocation sql.NullString
	Notes            sql.NullString
	CreatedAt        sql.NullTime
	UpdatedAt        sql.NullTime
}

func (r attendanceRow) toModel() (*AttendanceRecord, error) {
	a := AttendanceRecord{
		AttendanceID: r.AttendanceID,
		UserID:       r.UserID,
		CheckInDate:  r.CheckInDate,
		CheckInTime:  r.CheckInTime,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
	if r.CheckInPhotoID.Valid {
		v := uint64(r.CheckInPhotoID.Int64)
		a.CheckInPhotoID = &v
	}
	if r.CheckOutPhotoID.Valid {
		v := uint64(r.CheckOutPhotoID.Int64)
		a.CheckOutPhotoID = &v
	}
	if r.CheckOutTime.Valid {
		v := r.CheckOutTime.String
		a.CheckOutTime = &v
	}
	if r.Notes.Valid {
		v := r.Notes.String
		a.Notes = &v
	}
	if r.CheckInLocation.Valid && r.CheckInLocation.String != "" {
		var loc Location
		if err := json.Unmarshal([]byte(r.CheckInLocation.String), &loc); err != nil {
			return nil, err
		}
		a.CheckInLocation = &loc
	}
	if r.CheckOutLocation.Valid && r.CheckOutLocation.String != "" {
		var loc Location
		if err := json.Unmarshal([]byte(r.CheckOutLocation.String), &loc); err != nil {
			return nil, err
		}
		a.CheckOutLocation = &loc
	}
	return &a, nil
}

func scanRow(row *sql.Row) (*AttendanceRecord, error) {
	var r attendanceRow
	err := row.Scan(
		&r.AttendanceID, &r.UserID, &r.CheckInDate, &r.CheckInTime,
		&r.CheckInPhotoID, &r.CheckInLocation,
		&r.CheckOutTime, &r.CheckOutPhotoID, &r.CheckOutLocation,
		&r.Notes, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toModel()
}

func locationJSON(loc *Location) (any, error) {
	if loc == nil {
		return nil, nil
	}
	b, err := json.Marshal(loc)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Store) Insert(ctx context.Context, a *AttendanceRecord) (uint64, error) {
	locJSON, err := locationJSON(a.CheckInLocation)
	if err != nil {
		return 0, err
	}
	const q = `
	INSERT INTO attendance_records
		(user_id, check_in_date, check_in_time, check_in_photo_id, check_in_location, notes,
		 created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(6), UTC_TIMESTAMP(6))`
	res, err := s.db.ExecContext(ctx, q,
		a.UserID, a.CheckInDate, a.CheckInTime, a.CheckInPhotoID, locJSON, a.Notes,
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

func (s *Store) GetByID(ctx context.Context, id uint64) (*AttendanceRecord, error) {
	return scanRow(s.db.QueryRowContext(ctx, selectCols+` WHERE attendance_id = ?`, id))
}

// 当日レコードの厳密一致検索
func (s *Store) GetForDate(ctx context.Context, userID uint64, date string) (*AttendanceRecord, error) {
	return scanRow(s.db.QueryRowContext(ctx,
		selectCols+` WHERE user_id = ? AND check_in_date = ? LIMIT 1`, userID, date))
}

func (s *Store) ListForUser(ctx context.Context, userID uint64, limit int) ([]AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		selectCols+` WHERE user_id = ? ORDER BY attendance_id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AttendanceRecord{}
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(
			&r.AttendanceID, &r.UserID, &r.CheckInDate, &r.CheckInTime,
			&r.CheckInPhotoID, &r.CheckInLocation,
			&r.CheckOutTime, &r.CheckOutPhotoID, &r.CheckOutLocation,
			&r.Notes, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// チェックアウト欄の無条件上書き。既に値があっても置き換える。
func (s *Store) UpdateCheckOut(ctx context.Context, id uint64, checkOutTime string, photoID *uint64, loc *Location) error {
	locJSON, err := locationJSON(loc)
	if err != nil {
		return err
	}
	const q = `
	UPDATE attendance_records
	SET check_out_time = ?, check_out_photo_id = ?, check_out_location = ?, updated_at = UTC_TIMESTAMP(6)
	WHERE attendance_id = ?`
	_, err = s.db.ExecContext(ctx, q, checkOutTime, photoID, locJSON, id)
	return err
}

// 期間内の出勤日数
func (s *Store) CountDays(ctx context.Context, userID uint64, from, to string) (int64, error) {
	const q = `
	SELECT COUNT(*) FROM attendance_records
	WHERE user_id = ? AND check_in_date BETWEEN ? AND ?`
	var n int64
	err := s.db.QueryRowContext(ctx, q, userID, from, to).Scan(&n)
	return n, err
}
