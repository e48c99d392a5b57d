package users

import "time"

type CreateUserRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,max=50"`
	Email       string  `json:"email" binding:"required,max=255"`
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
}

// 部分更新。nil のフィールドは変更しない。
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
}

type UserResponse struct {
	UserID      uint64    `json:"user_id"`
	EmployeeID  string    `json:"employee_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Position    *string   `json:"position,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
