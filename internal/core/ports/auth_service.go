package ports

import (
	"context"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// SignupInput carries the fields of a registration attempt.
type SignupInput struct {
	Username   string
	Password   string
	Admin      bool
	AdminToken string
}

// AuthService implements registration and login. Login is the only place
// password comparison occurs; it returns a signed token on success.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
