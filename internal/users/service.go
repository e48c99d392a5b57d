package users

import (
	"context"
	"database/sql"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type Service struct {
	store *Store
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

func (s *Service) Create(ctx context.Context, in CreateUserRequest) (*UserResponse, error) {
	// employee_id / email はユニーク。INSERT前に存在確認して CONFLICT を返す。
	if u, err := s.store.GetByEmployeeID(ctx, in.EmployeeID); err != nil {
		return nil, err
	} else if u != nil {
		return nil, webapi.ErrConflict("employee_id already exists")
	}
	if u, err := s.store.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, webapi.ErrConflict("email already exists")
	}

	id, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, webapi.ErrInternal("inserted but not found")
	}
	res := u.toDTO()
	return &res, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, webapi.ErrNotFound("user not found")
	}
	res := u.toDTO()
	return &res, nil
}

func (s *Service) GetByEmployeeID(ctx context.Context, employeeID string) (*UserResponse, error) {
	if employeeID == "" {
		return nil, webapi.ErrInvalid("employee_id is required")
	}
	u, err := s.store.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, webapi.ErrNotFound("user not found")
	}
	res := u.toDTO()
	return &res, nil
}

func (s *Service) ListActive(ctx context.Context) ([]UserResponse, error) {
	list, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(list))
	for i := 0; i < len(list); i++ {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uint64, in UpdateUserRequest) (*UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, webapi.ErrNotFound("user not found")
	}
	updated, err := s.store.UpdateByID(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, webapi.ErrNotFound("user not found")
	}
	res := updated.toDTO()
	return &res, nil
}

func (s *Service) Deactivate(ctx context.Context, id uint64) error {
	n, err := s.store.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return webapi.ErrNotFound("user not found or already inactive")
	}
	return nil
}

// 初期プロフィール。テーブルが空のときだけ投入する。
var defaultUsers = []CreateUserRequest{
	{EmployeeID: "EMP001", Email: "john.doe@company.com", FirstName: "John", LastName: "Doe",
		Department: strPtr("Engineering"), Position: strPtr("Software Developer")},
	{EmployeeID: "EMP002", Email: "jane.smith@company.com", FirstName: "Jane", LastName: "Smith",
		Department: strPtr("Marketing"), Position: strPtr("Marketing Manager")},
	{EmployeeID: "EMP003", Email: "mike.johnson@company.com", FirstName: "Mike", LastName: "Johnson",
		Department: strPtr("Sales"), Position: strPtr("Sales Representative")},
}

func (s *Service) EnsureDefaults(ctx context.Context) ([]UserResponse, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, nil
	}
	out := []UserResponse{}
	for _, in := range defaultUsers {
		u, err := s.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
