package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	accounts map[string]*Account
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*Account{}}
}

func (m *memStore) GetByEmployeeID(_ context.Context, employeeID string) (*Account, error) {
	return m.accounts[employeeID], nil
}

func (m *memStore) Create(_ context.Context, a *Account) error {
	m.accounts[a.EmployeeID] = a
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	store := newMemStore()
	store.accounts["EMP001"] = &Account{
		EmployeeID: "EMP001", UserID: 1, PasswordHash: hash(t, "password123"),
	}
	svc := &Service{store: store}

	tokenStr, err := svc.Login(context.Background(), "EMP001", "password123")
	if err != nil {
		t.Fatal(err)
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return JWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "EMP001" {
		t.Fatalf("sub = %v, want EMP001", claims["sub"])
	}
	if claims["uid"] != "1" {
		t.Fatalf("uid = %v, want 1", claims["uid"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newMemStore()
	store.accounts["EMP001"] = &Account{
		EmployeeID: "EMP001", UserID: 1, PasswordHash: hash(t, "password123"),
	}
	svc := &Service{store: store}
	ctx := context.Background()

	if _, err := svc.Login(ctx, "EMP001", "wrong"); err == nil {
		t.Fatal("wrong password should fail")
	}
	if _, err := svc.Login(ctx, "EMP404", "password123"); err == nil {
		t.Fatal("unknown employee should fail")
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	store := newMemStore()
	store.accounts["EMP001"] = &Account{
		EmployeeID: "EMP001", UserID: 1,
		PasswordHash: hash(t, "password123"), IsDisabled: true,
	}
	svc := &Service{store: store}

	if _, err := svc.Login(context.Background(), "EMP001", "password123"); err == nil {
		t.Fatal("disabled account should fail")
	}
}

func TestRegisterAndConflict(t *testing.T) {
	svc := &Service{store: newMemStore()}
	ctx := context.Background()

	if err := svc.Register(ctx, "EMP010", 10, "secret"); err != nil {
		t.Fatal(err)
	}
	err := svc.Register(ctx, "EMP010", 10, "secret")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}

	// EnsureAccount は重複を黙殺する
	if err := svc.EnsureAccount(ctx, "EMP010", 10, "secret"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, "EMP010", "secret"); err != nil {
		t.Fatalf("login after register: %v", err)
	}
}
