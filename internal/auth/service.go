// Package auth implements the authentication core: registration,
// credential verification with login-history tracking, and the
// session binder that maps a verified identity onto a renewable,
// expiring cookie token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prasantparajuli/climate-solutions/internal/model"
	"github.com/prasantparajuli/climate-solutions/internal/repository"
)

// CredentialStore is the durable user storage the service verifies
// against. *repository.UserRepo satisfies it; tests use an in-memory
// fake.
type CredentialStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
	AppendLoginAttempt(ctx context.Context, userName string, a model.LoginAttempt) error
}

// Service provides registration and credential verification on top of
// a CredentialStore.
type Service struct {
	store      CredentialStore
	bcryptCost int
	nowTime    func() time.Time
}

// ServiceOption modifies a Service during construction.
type ServiceOption func(*Service)

// WithNowTime sets the clock function, primarily for testing.
func WithNowTime(now func() time.Time) ServiceOption {
	return func(s *Service) { s.nowTime = now }
}

func NewService(store CredentialStore, bcryptCost int, opts ...ServiceOption) *Service {
	s := &Service{store: store, bcryptCost: bcryptCost, nowTime: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	UserName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Credentials carries a login attempt. UserAgent comes from the
// request's User-Agent header and may be empty.
type Credentials struct {
	UserName  string
	Password  string
	UserAgent string
}

// Register validates the input and stores a new user record. The
// password/confirmation check runs before any storage access, and no
// login history entry is created. Duplicate user names surface as
// repository.ErrUserNameExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.Password != in.PasswordConfirm {
		return ErrPasswordMismatch
	}
	userName := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(in.Email)
	if userName == "" || email == "" || in.Password == "" {
		return ErrMissingFields
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.Create(ctx, &model.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
	})
}

// Authenticate verifies the credentials, appends a login attempt on
// success, and returns the sanitized identity snapshot including the
// attempt just recorded. Unknown user and wrong password both return
// ErrInvalidCredentials; the specific reason is only logged.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*model.Identity, error) {
	u, err := s.store.GetByUserName(ctx, creds.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("auth: login rejected for %q: unknown user", creds.UserName)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !verifyPassword(u.PasswordHash, creds.Password) {
		log.Printf("auth: login rejected for %q: wrong password", u.UserName)
		return nil, ErrInvalidCredentials
	}

	attempt := model.LoginAttempt{
		AttemptedAt: s.nowTime().UTC(),
		UserAgent:   creds.UserAgent,
	}
	if err := s.store.AppendLoginAttempt(ctx, u.UserName, attempt); err != nil {
		return nil, fmt.Errorf("append login attempt: %w", err)
	}

	return &model.Identity{
		UserName:     u.UserName,
		Email:        u.Email,
		LoginHistory: append(u.LoginHistory, attempt),
	}, nil
}
