package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/hash"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/tokens"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Secret []byte
	Now    func() time.Time

	// Compare checks a password against a bcrypt hash. Defaults to
	// hash.CheckPassword.
	Compare func(hash, password string) bool
}

// unknownAdminHash stands in for the stored hash when the email is unknown,
// so both login failures run one bcrypt comparison.
var unknownAdminHash = sync.OnceValue(func() string {
	h, err := hash.HashPassword("unknown-admin")
	if err != nil {
		panic(fmt.Sprintf("hash placeholder password: %v", err))
	}
	return h
})

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.Admin
}

func (s *AuthService) compare(h, password string) bool {
	if s.Compare != nil {
		return s.Compare(h, password)
	}
	return hash.CheckPassword(h, password)
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the credentials against the stored admin and issues a session
// token. Unknown email and wrong password are indistinguishable to callers.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	admin, err := s.Repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.compare(unknownAdminHash(), req.Password)
			return nil, fmt.Errorf("unknown admin %q: %w", req.Email, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if !s.compare(admin.PasswordHash, req.Password) {
		return nil, fmt.Errorf("password mismatch for %q: %w", req.Email, ErrInvalidCredentials)
	}

	now := s.now()
	token, err := tokens.Issue(admin.ID.String(), admin.Email, s.Secret, now)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Truncate(time.Second).Add(tokens.Lifetime),
		Admin:     admin,
	}, nil
}

// EnsureAdmin creates the admin account or resets its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, invalid("email", "email and password are required")
	}
	h, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin, err := s.Repo.UpsertAdmin(ctx, email, h)
	if err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}
	return admin, nil
}
