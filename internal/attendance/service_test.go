package attendance

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

var attendanceCols = []string{
	"attendance_id", "user_id", "check_in_date", "check_in_time",
	"check_in_photo_id", "check_in_location",
	"check_out_time", "check_out_photo_id", "check_out_location",
	"notes", "created_at", "updated_at",
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &Service{
		store: NewStore(conn),
		now:   func() time.Time { return time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC) },
	}, mock
}

func wantCode(t *testing.T, err error, code webapi.Code) {
	t.Helper()
	var api *webapi.APIError
	if !errors.As(err, &api) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if api.Code != code {
		t.Fatalf("code = %s, want %s", api.Code, code)
	}
}

func TestCheckInConflictWhenAlreadyCheckedIn(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ? AND check_in_date = ?")).
		WithArgs(uint64(1), "2024-06-03").
		WillReturnRows(sqlmock.NewRows(attendanceCols).
			AddRow(10, 1, "2024-06-03", "08:00:00", nil, nil, nil, nil, nil, nil, now, now))

	_, err := svc.CheckIn(context.Background(), CheckInRequest{UserID: 1})
	wantCode(t, err, webapi.CodeConflict)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckInCreatesRecord(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC)
	lat, lng := 35.68, 139.76

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ? AND check_in_date = ?")).
		WithArgs(uint64(7), "2024-06-03").
		WillReturnRows(sqlmock.NewRows(attendanceCols))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_records")).
		WithArgs(uint64(7), "2024-06-03", "09:15:00", nil,
			`{"latitude":35.68,"longitude":139.76,"address":"Unknown location"}`, nil).
		WillReturnResult(sqlmock.NewResult(42, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE attendance_id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(attendanceCols).
			AddRow(42, 7, "2024-06-03", "09:15:00", nil,
				`{"latitude":35.68,"longitude":139.76,"address":"Unknown location"}`,
				nil, nil, nil, nil, now, now))

	res, err := svc.CheckIn(context.Background(), CheckInRequest{
		UserID: 7, Latitude: &lat, Longitude: &lng,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.AttendanceID != 42 || res.CheckInDate != "2024-06-03" || res.CheckInTime != "09:15:00" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.CheckInLocation == nil || res.CheckInLocation.Address != "Unknown location" {
		t.Fatalf("location not round-tripped: %+v", res.CheckInLocation)
	}
	if res.HoursWorked != nil {
		t.Fatal("hours_worked should be nil before check-out")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckOutNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE attendance_id = ?")).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(attendanceCols))

	_, err := svc.CheckOut(context.Background(), 999, CheckOutRequest{})
	wantCode(t, err, webapi.CodeNotFound)
}

func TestCheckOutOverwritesExistingTime(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC)

	// 既にチェックアウト済みの行
	mock.ExpectQuery(regexp.QuoteMeta("WHERE attendance_id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(attendanceCols).
			AddRow(5, 1, "2024-06-03", "08:00:00", nil, nil, "12:00:00", nil, nil, nil, now, now))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE attendance_records")).
		WithArgs("09:15:00", nil, nil, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE attendance_id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(attendanceCols).
			AddRow(5, 1, "2024-06-03", "08:00:00", nil, nil, "09:15:00", nil, nil, nil, now, now))

	res, err := svc.CheckOut(context.Background(), 5, CheckOutRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CheckOutTime == nil || *res.CheckOutTime != "09:15:00" {
		t.Fatalf("check_out_time = %v, want 09:15:00", res.CheckOutTime)
	}
	if res.HoursWorked == nil || *res.HoursWorked != 1.25 {
		t.Fatalf("hours_worked = %v, want 1.25", res.HoursWorked)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestHoursWorked(t *testing.T) {
	out := "17:30:00"
	rec := AttendanceRecord{CheckInDate: "2024-06-03", CheckInTime: "09:00:00", CheckOutTime: &out}
	if h := rec.HoursWorked(); h == nil || *h != 8.5 {
		t.Fatalf("hours = %v, want 8.5", h)
	}

	rec.CheckOutTime = nil
	if h := rec.HoursWorked(); h != nil {
		t.Fatalf("hours = %v, want nil", h)
	}
}

func TestBuildLocation(t *testing.T) {
	lat, lng := 1.0, 2.0
	addr := "Office"

	if loc := buildLocation(&lat, nil, &addr); loc != nil {
		t.Fatal("longitude missing, location should be nil")
	}
	loc := buildLocation(&lat, &lng, nil)
	if loc == nil || loc.Address != "Unknown location" {
		t.Fatalf("default address not applied: %+v", loc)
	}
	loc = buildLocation(&lat, &lng, &addr)
	if loc == nil || loc.Address != "Office" {
		t.Fatalf("address not kept: %+v", loc)
	}
}

func TestStatsValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Stats(ctx, 1, "bad", "2024-06-30")
	wantCode(t, err, webapi.CodeInvalidArgument)

	_, err = svc.Stats(ctx, 1, "2024-06-30", "2024-06-01")
	wantCode(t, err, webapi.CodeInvalidArgument)

	_, err = svc.Stats(ctx, 0, "2024-06-01", "2024-06-30")
	wantCode(t, err, webapi.CodeInvalidArgument)
}

func TestStatsCountsDays(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance_records")).
		WithArgs(uint64(1), "2024-06-01", "2024-06-30").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(21))

	res, err := svc.Stats(context.Background(), 1, "2024-06-01", "2024-06-30")
	if err != nil {
		t.Fatal(err)
	}
	if res.DaysPresent != 21 {
		t.Fatalf("days_present = %d, want 21", res.DaysPresent)
	}
}
