package ports

import (
	"context"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// MemoRepository defines the persistence interface for memos.
type MemoRepository interface {
	Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error)
	FindByID(ctx context.Context, id int64) (*domain.Memo, error)
	FindAll(ctx context.Context) ([]domain.Memo, error)
	Update(ctx context.Context, memo *domain.Memo) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines the persistence interface for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	FindByMemoID(ctx context.Context, memoID int64) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	DeleteByMemoID(ctx context.Context, memoID int64) error
}
