package requests

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

var requestCols = []string{
	"request_id", "user_id", "request_type", "title", "reason",
	"start_date", "end_date", "status", "supporting_documents",
	"manager_notes", "reviewed_by", "reviewed_at", "created_at", "updated_at",
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
		now:   func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) },
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

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := CreateRequestRequest{
		UserID: 1, RequestType: TypeLeave, Title: "Vacation", Reason: "Family trip",
		StartDate: "2024-07-01", EndDate: "2024-07-05",
	}

	in := base
	in.UserID = 0
	_, err := svc.Create(ctx, in)
	wantCode(t, err, webapi.CodeInvalidArgument)

	in = base
	in.RequestType = "holiday"
	_, err = svc.Create(ctx, in)
	wantCode(t, err, webapi.CodeInvalidArgument)

	in = base
	in.StartDate = "07/01/2024"
	_, err = svc.Create(ctx, in)
	wantCode(t, err, webapi.CodeInvalidArgument)
}

func TestCreateAlwaysPending(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requests")).
		WithArgs(uint64(1), TypeSickLeave, "Sick day", "Flu", "2024-06-11", "2024-06-11",
			StatusPending, "[3,4]").
		WillReturnResult(sqlmock.NewResult(9, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(9, 1, TypeSickLeave, "Sick day", "Flu", "2024-06-11", "2024-06-11",
				StatusPending, "[3,4]", nil, nil, nil, now, now))

	res, err := svc.Create(context.Background(), CreateRequestRequest{
		UserID: 1, RequestType: TypeSickLeave, Title: "Sick day", Reason: "Flu",
		StartDate: "2024-06-11", EndDate: "2024-06-11",
		SupportingDocumentIDs: []uint64{3, 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusPending {
		t.Fatalf("status = %s, want pending", res.Status)
	}
	if len(res.SupportingDocuments) != 2 || res.SupportingDocuments[0] != 3 {
		t.Fatalf("supporting_documents = %v", res.SupportingDocuments)
	}
	if res.ReviewedAt != nil {
		t.Fatal("reviewed_at should be unset on create")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateNilDocsBecomesEmptyList(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO requests")).
		WithArgs(uint64(2), TypePermission, "Early leave", "Appointment",
			"2024-06-12", "2024-06-12", StatusPending, "[]").
		WillReturnResult(sqlmock.NewResult(10, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(10, 2, TypePermission, "Early leave", "Appointment",
				"2024-06-12", "2024-06-12", StatusPending, "[]", nil, nil, nil, now, now))

	res, err := svc.Create(context.Background(), CreateRequestRequest{
		UserID: 2, RequestType: TypePermission, Title: "Early leave", Reason: "Appointment",
		StartDate: "2024-06-12", EndDate: "2024-06-12",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.SupportingDocuments == nil || len(res.SupportingDocuments) != 0 {
		t.Fatalf("supporting_documents = %v, want []", res.SupportingDocuments)
	}
}

func TestUpdateStatusStampsReviewedAt(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	status := StatusApproved
	notes := "OK"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(9, 1, TypeLeave, "Vacation", "Trip", "2024-07-01", "2024-07-05",
				StatusPending, "[]", nil, nil, nil, now, now))

	// status が来たので reviewed_at も SET される
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE requests SET status = ?, manager_notes = ?, reviewed_at = ?, updated_at = UTC_TIMESTAMP(6) WHERE request_id = ?")).
		WithArgs(status, notes, now, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(9, 1, TypeLeave, "Vacation", "Trip", "2024-07-01", "2024-07-05",
				status, "[]", notes, nil, now, now, now))

	res, err := svc.Update(context.Background(), 9, UpdateRequestRequest{
		Status: &status, ManagerNotes: &notes,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusApproved {
		t.Fatalf("status = %s, want approved", res.Status)
	}
	if res.ReviewedAt == nil || !res.ReviewedAt.Equal(now) {
		t.Fatalf("reviewed_at = %v, want %v", res.ReviewedAt, now)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateWithoutStatusLeavesReviewedAt(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	title := "Vacation (revised)"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(9, 1, TypeLeave, "Vacation", "Trip", "2024-07-01", "2024-07-05",
				StatusPending, "[]", nil, nil, nil, now, now))

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE requests SET title = ?, updated_at = UTC_TIMESTAMP(6) WHERE request_id = ?")).
		WithArgs(title, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(9, 1, TypeLeave, title, "Trip", "2024-07-01", "2024-07-05",
				StatusPending, "[]", nil, nil, nil, now, now))

	res, err := svc.Update(context.Background(), 9, UpdateRequestRequest{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if res.Title != title {
		t.Fatalf("title = %s", res.Title)
	}
	if res.ReviewedAt != nil {
		t.Fatal("reviewed_at should stay unset when status is omitted")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE request_id = ?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(requestCols))

	title := "x"
	_, err := svc.Update(context.Background(), 404, UpdateRequestRequest{Title: &title})
	wantCode(t, err, webapi.CodeNotFound)
}

func TestUpdateInvalidStatus(t *testing.T) {
	svc, _ := newTestService(t)

	bad := "maybe"
	_, err := svc.Update(context.Background(), 9, UpdateRequestRequest{Status: &bad})
	wantCode(t, err, webapi.CodeInvalidArgument)
}
