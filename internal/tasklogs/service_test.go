package tasklogs

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

var taskCols = []string{
	"task_id", "user_id", "task_date", "title", "description",
	"duration_hours", "status", "priority", "category",
	"attachments", "tags", "created_at", "updated_at",
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &Service{store: NewStore(conn)}, mock
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

func TestCreateAppliesDefaults(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	hours := 2.5

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO task_logs")).
		WithArgs(uint64(1), "2024-06-10", "Refactor importer", "Split the CSV path",
			"2.50", StatusInProgress, PriorityMedium, nil, "[]", `["backend"]`).
		WillReturnResult(sqlmock.NewResult(3, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE task_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(3, 1, "2024-06-10", "Refactor importer", "Split the CSV path",
				"2.50", StatusInProgress, PriorityMedium, nil, "[]", `["backend"]`, now, now))

	res, err := svc.Create(context.Background(), CreateTaskRequest{
		UserID: 1, TaskDate: "2024-06-10",
		Title: "Refactor importer", Description: "Split the CSV path",
		DurationHours: &hours, Tags: []string{"backend"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusInProgress || res.Priority != PriorityMedium {
		t.Fatalf("defaults not applied: %s/%s", res.Status, res.Priority)
	}
	if res.DurationHours == nil || *res.DurationHours != 2.5 {
		t.Fatalf("duration_hours = %v, want 2.5", res.DurationHours)
	}
	if res.Attachments == nil || len(res.Attachments) != 0 {
		t.Fatalf("attachments = %v, want []", res.Attachments)
	}
	if len(res.Tags) != 1 || res.Tags[0] != "backend" {
		t.Fatalf("tags = %v", res.Tags)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		UserID: 1, TaskDate: "June 10", Title: "x", Description: "y",
	})
	wantCode(t, err, webapi.CodeInvalidArgument)
}

func TestUpdateReplacesTagsWholesale(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tags := []string{"backend", "urgent"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE task_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(3, 1, "2024-06-10", "Refactor importer", "Split the CSV path",
				nil, StatusInProgress, PriorityMedium, nil, "[]", `["backend"]`, now, now))

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE task_logs SET tags = ?, updated_at = UTC_TIMESTAMP(6) WHERE task_id = ?")).
		WithArgs(`["backend","urgent"]`, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("WHERE task_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(3, 1, "2024-06-10", "Refactor importer", "Split the CSV path",
				nil, StatusInProgress, PriorityMedium, nil, "[]", `["backend","urgent"]`, now, now))

	res, err := svc.Update(context.Background(), 3, UpdateTaskRequest{Tags: &tags})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tags) != 2 || res.Tags[1] != "urgent" {
		t.Fatalf("tags = %v", res.Tags)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE task_id = ?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(taskCols))

	title := "x"
	_, err := svc.Update(context.Background(), 404, UpdateTaskRequest{Title: &title})
	wantCode(t, err, webapi.CodeNotFound)
}

func TestDeleteReportsWhetherRowExisted(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM task_logs WHERE task_id = ?")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := svc.Delete(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected deleted = true")
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM task_logs WHERE task_id = ?")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = svc.Delete(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("expected deleted = false on second delete")
	}
}

func TestListForUserFiltersByDate(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	date := "2024-06-10"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = ? AND task_date = ? ORDER BY task_id DESC LIMIT ?")).
		WithArgs(uint64(1), date, 50).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(3, 1, date, "Refactor importer", "Split the CSV path",
				nil, StatusCompleted, PriorityMedium, nil, "[]", "[]", now, now))

	res, err := svc.ListForUser(context.Background(), 1, &date, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].TaskDate != date {
		t.Fatalf("unexpected list: %+v", res)
	}
}

func TestListForUserRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t)

	bad := "last tuesday"
	_, err := svc.ListForUser(context.Background(), 1, &bad, 0)
	wantCode(t, err, webapi.CodeInvalidArgument)
}
