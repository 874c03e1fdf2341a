package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/shopping-lists/internal/model"
	"github.com/iliyamo/shopping-lists/internal/repository"
	"github.com/iliyamo/shopping-lists/internal/session"
	"github.com/iliyamo/shopping-lists/internal/utils"
	"github.com/iliyamo/shopping-lists/internal/validation"
)

// RegisterInput is the raw sign-up body.  Fields are untyped so that a
// wrong JSON type is reported as a validation failure.
type RegisterInput struct {
	Username any `json:"username"`
	Password any `json:"password"`
	Email    any `json:"email"`
	FullName any `json:"full_name"`
}

// AuthService registers users, logs them in and out, and resolves session
// tokens to active users.
type AuthService struct {
	users      UserStore
	sessions   session.Store
	bcryptCost int
	timeout    time.Duration
	now        func() time.Time

	dummyOnce sync.Once
	dummy     []byte
	dummyErr  error
}

func NewAuthService(users UserStore, sessions session.Store, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		timeout:    DefaultStoreTimeout,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// dummyHash is built once, at the same cost as real password hashes, so a
// login for an unknown user takes as long as one with a wrong password.
func (s *AuthService) dummyHash() ([]byte, error) {
	s.dummyOnce.Do(func() {
		s.dummy, s.dummyErr = utils.NewDummyHash(s.bcryptCost)
	})
	return s.dummy, s.dummyErr
}

// Register validates every field, rejects a taken username or email, and
// stores the user with a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint64, error) {
	reg, err := validation.ValidateRegistration(in.Username, in.Password, in.Email, in.FullName)
	if err != nil {
		return 0, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	taken, err := s.users.UsernameExists(ctx, reg.Username)
	if err != nil {
		return 0, storeErr("check username", err)
	}
	if taken {
		return 0, ErrUsernameTaken
	}
	taken, err = s.users.EmailExists(ctx, reg.Email)
	if err != nil {
		return 0, storeErr("check email", err)
	}
	if taken {
		return 0, ErrEmailTaken
	}

	hash, err := utils.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	id, err := s.users.Create(ctx, model.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FullName:     reg.FullName,
	})
	if err != nil {
		return 0, storeErr("create user", err)
	}
	return id, nil
}

// Login verifies the credentials and opens a session.  Unknown usernames,
// inactive accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password any) (model.User, string, error) {
	name, pass, err := validation.ValidateLogin(username, password)
	if err != nil {
		return model.User{}, "", err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.users.GetByUsername(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		dummy, err := s.dummyHash()
		if err != nil {
			return model.User{}, "", fmt.Errorf("dummy hash: %w", err)
		}
		utils.BurnPasswordCheck(dummy, pass)
		return model.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", storeErr("get user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, pass) || !u.IsActive {
		return model.User{}, "", ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastAccess(ctx, u.ID, now); err != nil {
		return model.User{}, "", storeErr("touch last access", err)
	}
	u.LastAccess = &now

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return model.User{}, "", storeErr("create session", err)
	}
	return u, token, nil
}

// Logout deletes the session.  An unknown or empty token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return storeErr("delete session", s.sessions.Delete(ctx, token))
}

// Authenticate resolves a session token to the id of an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	uid, err := s.sessions.Lookup(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, storeErr("lookup session", err)
	}
	u, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, storeErr("get user", err)
	}
	if !u.IsActive {
		return 0, ErrUnauthorized
	}
	return uid, nil
}

// Me returns the current user.
func (s *AuthService) Me(ctx context.Context, userID uint64) (model.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !u.IsActive) {
		return model.User{}, ErrUnauthorized
	}
	if err != nil {
		return model.User{}, storeErr("get user", err)
	}
	return u, nil
}

// Deactivate marks the account inactive and ends the current session.
// The account and its lists are kept.
func (s *AuthService) Deactivate(ctx context.Context, userID uint64, token string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.users.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthorized
		}
		return storeErr("deactivate user", err)
	}
	if token == "" {
		return nil
	}
	return storeErr("delete session", s.sessions.Delete(ctx, token))
}
