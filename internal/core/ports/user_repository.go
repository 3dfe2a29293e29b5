package ports

import (
	"context"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// The auth core only reads existing accounts; Create is used by signup.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
