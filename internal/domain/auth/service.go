package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"autoshop/internal/pkg/validator"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	TTL() time.Duration
}

type Service struct {
	users UserRepository
	jwt   tokenIssuer
	log   *zap.Logger
	now   func() time.Time
}

func NewService(users UserRepository, jwt tokenIssuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, jwt: jwt, log: log, now: time.Now}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if errs := validator.Validate(&req); len(errs) > 0 {
		return nil, errs
	}
	return s.CreateUser(ctx, req.Name, req.Email, req.Phone, req.Password, RoleCustomer)
}

// CreateUser stores a user with any role. Used by registration and seeding.
func (s *Service) CreateUser(ctx context.Context, name, email, phone, password string, role Role) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Phone:        phone,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Int64("user_id", u.ID), zap.String("role", string(role)))
	return u, nil
}

// Login checks credentials and issues an access token. Five wrong passwords
// in a row lock the account for fifteen minutes.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if errs := validator.Validate(&req); len(errs) > 0 {
		return nil, errs
	}

	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if u.LockedUntil != nil && u.LockedUntil.After(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		attempts := u.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedLoginAttempts {
			until := now.Add(lockoutDuration)
			lockedUntil = &until
		}
		if err := s.users.RecordFailedLogin(ctx, u.ID, attempts, lockedUntil); err != nil {
			return nil, err
		}
		if lockedUntil != nil {
			s.log.Warn("account locked after failed logins", zap.Int64("user_id", u.ID))
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	u.LastLoginAt = &now
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(s.jwt.TTL()),
		User:        u,
	}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
