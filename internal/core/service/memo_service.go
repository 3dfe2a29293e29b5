package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/core/domain"
	"github.com/memoboard/memo-api/internal/core/ports"
)

type memoService struct {
	memos    ports.MemoRepository
	comments ports.CommentRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewMemoService returns a MemoService implementation.
func NewMemoService(memos ports.MemoRepository, comments ports.CommentRepository, audit ports.AuditSink, log zerolog.Logger) ports.MemoService {
	return &memoService{memos: memos, comments: comments, audit: audit, log: log}
}

func (s *memoService) Create(ctx context.Context, p domain.Principal, title, contents string) (*domain.Memo, error) {
	now := time.Now().UTC()
	memo := &domain.Memo{
		Username:  p.Username,
		Title:     title,
		Contents:  contents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.memos.Create(ctx, memo)
	if err != nil {
		s.log.Error().Err(err).Str("username", p.Username).Msg("memo create failed")
		return nil, err
	}
	return created, nil
}

func (s *memoService) GetAll(ctx context.Context) ([]ports.MemoWithComments, error) {
	memos, err := s.memos.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.MemoWithComments, 0, len(memos))
	for _, m := range memos {
		comments, err := s.comments.FindByMemoID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.MemoWithComments{Memo: m, Comments: comments})
	}
	return out, nil
}

func (s *memoService) GetOne(ctx context.Context, id int64) (*ports.MemoWithComments, error) {
	memo, err := s.memos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.FindByMemoID(ctx, memo.ID)
	if err != nil {
		return nil, err
	}
	return &ports.MemoWithComments{Memo: *memo, Comments: comments}, nil
}

// Update applies the edit only when the policy allows it. The stored owner is
// loaded first; nothing is written on a denied request.
func (s *memoService) Update(ctx context.Context, p domain.Principal, id int64, title, contents string) (*domain.Memo, error) {
	memo, err := s.memos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, memo.Username) {
		s.denied(p, "memo")
		return nil, domain.ErrPermissionDenied
	}

	memo.Title = title
	memo.Contents = contents
	memo.UpdatedAt = time.Now().UTC()
	if err := s.memos.Update(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

// Delete removes the memo and its comments when the policy allows it.
func (s *memoService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	memo, err := s.memos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, memo.Username) {
		s.denied(p, "memo")
		return domain.ErrPermissionDenied
	}

	if err := s.comments.DeleteByMemoID(ctx, memo.ID); err != nil {
		return err
	}
	return s.memos.Delete(ctx, memo.ID)
}

func (s *memoService) denied(p domain.Principal, resource string) {
	s.audit.Record(domain.AuditEvent{
		Username:  p.Username,
		Action:    domain.AuditPermissionDenied,
		Detail:    resource,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", p.Username).Str("resource", resource).Msg("mutation denied")
}
