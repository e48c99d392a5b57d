package auth

import (
	"context"
	"database/sql"
	"errors"
)

// ポータル利用者のログインアカウント。プロフィール（users）とは別テーブルで持つ。
type Account struct {
	EmployeeID   string
	UserID       uint64 // users.user_id への参照
	PasswordHash string
	IsDisabled   bool
	CreatedAt    string
}

type AccountStore interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*Account, error)
	Create(ctx context.Context, a *Account) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AccountStore {
	return &Store{db: db}
}

func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (*Account, error) {
	const q = `
SELECT employee_id, user_id, password_hash, is_disabled, created_at
FROM auth_accounts
WHERE employee_id = ?
LIMIT 1
`
	var a Account
	var isDisabledInt int
	err := s.db.QueryRowContext(ctx, q, employeeID).Scan(
		&a.EmployeeID,
		&a.UserID,
		&a.PasswordHash,
		&isDisabledInt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if isDisabledInt != 0 {
		a.IsDisabled = true
	}
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO auth_accounts (employee_id, user_id, password_hash, is_disabled, created_at)
VALUES (?, ?, ?, 0, NOW(6))
`
	_, err := s.db.ExecContext(ctx, q, a.EmployeeID, a.UserID, a.PasswordHash)
	return err
}
