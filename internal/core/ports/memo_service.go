package ports

import (
	"context"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// MemoWithComments pairs a memo with its comments ordered by id.
type MemoWithComments struct {
	Memo     domain.Memo      `json:"memo"`
	Comments []domain.Comment `json:"comments"`
}

// MemoService exposes memo CRUD. Mutations are evaluated against the
// authorization policy before they execute.
type MemoService interface {
	Create(ctx context.Context, p domain.Principal, title, contents string) (*domain.Memo, error)
	GetAll(ctx context.Context) ([]MemoWithComments, error)
	GetOne(ctx context.Context, id int64) (*MemoWithComments, error)
	Update(ctx context.Context, p domain.Principal, id int64, title, contents string) (*domain.Memo, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}

// CommentService exposes comment CRUD with the same policy gate on mutations.
type CommentService interface {
	Create(ctx context.Context, p domain.Principal, memoID int64, contents string) (*domain.Comment, error)
	Update(ctx context.Context, p domain.Principal, id int64, contents string) (*domain.Comment, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}
