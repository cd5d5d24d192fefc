package service

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/internal/repository"
	"github.com/naveensh16/sweet-shop-management/pkg/auth"
)

type AuthSvc struct {
	repo     *repository.UserRepo
	tokenTTL time.Duration
}

func NewAuthSvc(r *repository.UserRepo, tokenTTL time.Duration) *AuthSvc {
	return &AuthSvc{repo: r, tokenTTL: tokenTTL}
}

func (s *AuthSvc) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if err := validateRegistration(email, password, name); err != nil {
		return nil, err
	}
	if _, err := s.repo.ByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login answers with the same error for an unknown email and a bad password.
func (s *AuthSvc) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, domain.ErrAccountDisabled
	}
	token, err := auth.CreateAccessToken(strconv.FormatUint(uint64(u.ID), 10), string(u.Role), u.Email, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// EnsureAdmin seeds the bootstrap administrator. Safe to call on every start.
func (s *AuthSvc) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if _, err := s.repo.ByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
}

func validateRegistration(email, password, name string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.Invalidf("invalid email address")
	}
	if len(name) < 2 || len(name) > 100 {
		return domain.Invalidf("name must be 2-100 characters")
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return domain.Invalidf("password must be 8-100 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper {
		return domain.Invalidf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return domain.Invalidf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return domain.Invalidf("password must contain at least one digit")
	}
	return nil
}
