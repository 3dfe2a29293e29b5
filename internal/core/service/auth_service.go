package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/core/domain"
	"github.com/memoboard/memo-api/internal/core/password"
	"github.com/memoboard/memo-api/internal/core/ports"
	"github.com/memoboard/memo-api/internal/core/token"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9]{4,10}$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()]{8,15}$`)
)

// LoginThrottle abstracts the failed-attempt counter (Redis). Implementations
// fail open: an unreachable backend never locks out logins by itself.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users      ports.UserRepository
	hasher     *password.Hasher
	codec      *token.Codec
	adminToken string
	throttle   LoginThrottle
	audit      ports.AuditSink
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	adminToken string,
	throttle LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		adminToken: adminToken,
		throttle:   throttle,
		audit:      audit,
		log:        log,
	}
}

// Signup registers a new account. Usernames are lowercase alphanumerics of
// 4-10 characters, passwords 8-15 characters of letters, digits and
// !@#$%^&*(). An admin account requires the configured registration token.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if !usernamePattern.MatchString(in.Username) || !passwordPattern.MatchString(in.Password) {
		return nil, domain.ErrInvalidSignup
	}

	role := domain.RoleUser
	if in.Admin {
		if in.AdminToken != s.adminToken {
			return nil, domain.ErrBadAdminToken
		}
		role = domain.RoleAdmin
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Username:  created.Username,
		Action:    domain.AuditSignup,
		Detail:    string(created.Role),
		Timestamp: now,
	})
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("account created")

	return created, nil
}

// Login validates a login attempt and mints a credential. Unknown usernames
// and wrong passwords are indistinguishable to the caller; both surface as
// ErrInvalidCredentials so the response never leaks which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *domain.User, error) {
	if username == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if locked, err := s.throttle.TooManyFailures(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle unavailable, proceeding")
	} else if locked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle reset failed")
	}
	s.audit.Record(domain.AuditEvent{
		Username:  user.Username,
		Action:    domain.AuditLoginSuccess,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", user.Username).Msg("login successful")

	return tkn, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle record failed")
	}
	s.audit.Record(domain.AuditEvent{
		Username:  username,
		Action:    domain.AuditLoginFailure,
		Timestamp: time.Now().UTC(),
	})
}
