package auth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 秘密鍵 (本番では環境変数から取得推奨)
var jwtSecret = []byte("your-secret-key")

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

type Service struct {
	store AccountStore
}

func NewService(db *sql.DB) *Service {
	return &Service{store: NewStore(db)}
}

type AuthService interface {
	Login(ctx context.Context, employeeID, password string) (string, error)
	Register(ctx context.Context, employeeID string, userID uint64, password string) error
}

func JWTSecret() []byte {
	return jwtSecret
}

func (s *Service) Login(ctx context.Context, employeeID, password string) (string, error) {
	acct, err := s.store.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", errors.New("authentication failed")
	}
	if acct.IsDisabled {
		return "", errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("authentication failed")
	}

	// uid にポータルの user_id を積む。各エンジンは呼び出し側が渡す user_id を信頼する。
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": acct.EmployeeID,
		"uid": strconv.FormatUint(acct.UserID, 10),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *Service) Register(ctx context.Context, employeeID string, userID uint64, password string) error {
	exists, err := s.store.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.store.Create(ctx, &Account{
		EmployeeID:   employeeID,
		UserID:       userID,
		PasswordHash: string(hash),
		IsDisabled:   false,
	})
}

// シード用。既にあれば何もしない。
func (s *Service) EnsureAccount(ctx context.Context, employeeID string, userID uint64, password string) error {
	err := s.Register(ctx, employeeID, userID, password)
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	return err
}
