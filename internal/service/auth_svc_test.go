package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/internal/repository"
	"github.com/naveensh16/sweet-shop-management/pkg/auth"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// single connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	return gdb
}

func newAuthSvc(t *testing.T) (*AuthSvc, *repository.UserRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := repository.NewUserRepo(newTestDB(t))
	require.NoError(t, repo.Migrate())
	return NewAuthSvc(repo, 30*time.Minute), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "newuser@example.com", "SecurePass123!", "New User")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "newuser@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "SecurePass123!", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"malformed email", "invalid-email", "SecurePass123!", "Test User"},
		{"no uppercase", "user@example.com", "weakpass123", "Test User"},
		{"no lowercase", "user@example.com", "WEAKPASS123", "Test User"},
		{"no digit", "user@example.com", "WeakPassword", "Test User"},
		{"too short", "user@example.com", "Short1!", "Test User"},
		{"name too short", "user@example.com", "SecurePass123!", "X"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.password, tc.userName)
			var ve domain.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "SecurePass123!", "First User")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "AnotherPass123!", "Second User")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterEmailCaseSensitive(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "User@x.com", "SecurePass123!", "Upper User")
	require.NoError(t, err)

	// a different casing is a different account
	u, err := svc.Register(ctx, "user@x.com", "SecurePass123!", "Lower User")
	require.NoError(t, err)
	assert.Equal(t, "user@x.com", u.Email)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "login@example.com", "SecurePass123!", "Login User")
	require.NoError(t, err)

	token, got, err := svc.Login(ctx, "login@example.com", "SecurePass123!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := auth.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(u.ID), 10), claims.Sub)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "someone@example.com", "SecurePass123!", "Some One")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "SecurePass123!")
	_, _, errWrongPw := svc.Login(ctx, "someone@example.com", "WrongPass123!")

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
	// identical error either way, no account enumeration
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newAuthSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "inactive@example.com", "SecurePass123!", "Inactive User")
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(ctx, u.ID, false))

	_, _, err = svc.Login(ctx, "inactive@example.com", "SecurePass123!")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestTokenSurvivesDeactivation(t *testing.T) {
	svc, repo := newAuthSvc(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "stale@example.com", "SecurePass123!", "Stale User")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "stale@example.com", "SecurePass123!")
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, u.ID, false))

	// a live token keeps resolving until expiry; deactivation does not revoke
	claims, err := auth.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "stale@example.com", claims.Email)
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newAuthSvc(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@sweetshop.com", "Admin123!", "Admin User"))
	// second call is a no-op
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@sweetshop.com", "Admin123!", "Admin User"))

	u, err := repo.ByEmail(ctx, "admin@sweetshop.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, u.IsActive)

	token, _, err := svc.Login(ctx, "admin@sweetshop.com", "Admin123!")
	require.NoError(t, err)
	claims, err := auth.ParseValidate(token)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)
}
