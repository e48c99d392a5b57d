package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

const selectUserCols = `
	SELECT user_id, employee_id, email, first_name, last_name,
		phone_number, department, position, is_active, created_at, updated_at
	FROM users`

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	var phone, dept, pos sql.NullString
	var active int
	err := row.Scan(
		&u.UserID, &u.EmployeeID, &u.Email, &u.FirstName, &u.LastName,
		&phone, &dept, &pos, &active, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		u.PhoneNumber = &v
	}
	if dept.Valid {
		v := dept.String
		u.Department = &v
	}
	if pos.Valid {
		v := pos.String
		u.Position = &v
	}
	u.IsActive = active != 0
	return &u, nil
}

func (s *Store) Insert(ctx context.Context, in CreateUserRequest) (uint64, error) {
	const q = `
	INSERT INTO users
		(employee_id, email, first_name, last_name, phone_number, department, position,
		 is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, 1, UTC_TIMESTAMP(6), UTC_TIMESTAMP(6))`
	res, err := s.db.ExecContext(ctx, q,
		in.EmployeeID, in.Email, in.FirstName, in.LastName,
		in.PhoneNumber, in.Department, in.Position,
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

func (s *Store) GetByID(ctx context.Context, id uint64) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectUserCols+` WHERE user_id = ?`, id))
}

func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectUserCols+` WHERE employee_id = ?`, employeeID))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectUserCols+` WHERE email = ?`, email))
}

func (s *Store) ListActive(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, selectUserCols+` WHERE is_active = 1 ORDER BY user_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		var phone, dept, pos sql.NullString
		var active int
		if err := rows.Scan(
			&u.UserID, &u.EmployeeID, &u.Email, &u.FirstName, &u.LastName,
			&phone, &dept, &pos, &active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if phone.Valid {
			v := phone.String
			u.PhoneNumber = &v
		}
		if dept.Valid {
			v := dept.String
			u.Department = &v
		}
		if pos.Valid {
			v := pos.String
			u.Position = &v
		}
		u.IsActive = active != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// 動的アップデート。nil でないフィールドだけ SET に積む。
func (s *Store) UpdateByID(ctx context.Context, id uint64, in UpdateUserRequest) (*User, error) {
	sets := []string{}
	args := []any{}
	if in.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *in.Email)
	}
	if in.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *in.FirstName)
	}
	if in.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *in.LastName)
	}
	if in.PhoneNumber != nil {
		sets = append(sets, "phone_number = ?")
		args = append(args, *in.PhoneNumber)
	}
	if in.Department != nil {
		sets = append(sets, "department = ?")
		args = append(args, *in.Department)
	}
	if in.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *in.Position)
	}

	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = UTC_TIMESTAMP(6)")
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = ?`, strings.Join(sets, ", "))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Deactivate(ctx context.Context, id uint64) (int64, error) {
	const q = `UPDATE users SET is_active = 0, updated_at = UTC_TIMESTAMP(6) WHERE user_id = ? AND is_active = 1`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
