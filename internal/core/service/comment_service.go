package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/core/domain"
	"github.com/memoboard/memo-api/internal/core/ports"
)

type commentService struct {
	comments ports.CommentRepository
	memos    ports.MemoRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewCommentService returns a CommentService implementation.
func NewCommentService(comments ports.CommentRepository, memos ports.MemoRepository, audit ports.AuditSink, log zerolog.Logger) ports.CommentService {
	return &commentService{comments: comments, memos: memos, audit: audit, log: log}
}

// Create attaches a comment to an existing memo.
func (s *commentService) Create(ctx context.Context, p domain.Principal, memoID int64, contents string) (*domain.Comment, error) {
	if _, err := s.memos.FindByID(ctx, memoID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		MemoID:    memoID,
		Username:  p.Username,
		Contents:  contents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		s.log.Error().Err(err).Str("username", p.Username).Msg("comment create failed")
		return nil, err
	}
	return created, nil
}

func (s *commentService) Update(ctx context.Context, p domain.Principal, id int64, contents string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, comment.Username) {
		s.denied(p)
		return nil, domain.ErrPermissionDenied
	}

	comment.Contents = contents
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, comment.Username) {
		s.denied(p)
		return domain.ErrPermissionDenied
	}
	return s.comments.Delete(ctx, comment.ID)
}

func (s *commentService) denied(p domain.Principal) {
	s.audit.Record(domain.AuditEvent{
		Username:  p.Username,
		Action:    domain.AuditPermissionDenied,
		Detail:    "comment",
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", p.Username).Str("resource", "comment").Msg("mutation denied")
}
