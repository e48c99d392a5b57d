package users

import "time"

// 社員プロフィール。物理削除はせず is_active を落とすだけ。
type User struct {
	UserID      uint64
	EmployeeID  string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Department  *string
	Position    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u User) toDTO() UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		EmployeeID:  u.EmployeeID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Department:  u.Department,
		Position:    u.Position,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
