package service

import (
	"context"
	"sync"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// Map-backed stubs shared by the service tests.

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	copy.ID = user.Username
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubMemoRepo struct {
	memos  map[int64]*domain.Memo
	nextID int64
}

func newStubMemoRepo() *stubMemoRepo {
	return &stubMemoRepo{memos: make(map[int64]*domain.Memo)}
}

func cloneMemo(m *domain.Memo) *domain.Memo {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMemoRepo) Create(_ context.Context, memo *domain.Memo) (*domain.Memo, error) {
	r.nextID++
	copy := cloneMemo(memo)
	copy.ID = r.nextID
	r.memos[copy.ID] = cloneMemo(copy)
	return cloneMemo(copy), nil
}

func (r *stubMemoRepo) FindByID(_ context.Context, id int64) (*domain.Memo, error) {
	m, ok := r.memos[id]
	if !ok {
		return nil, domain.ErrMemoNotFound
	}
	return cloneMemo(m), nil
}

func (r *stubMemoRepo) FindAll(_ context.Context) ([]domain.Memo, error) {
	out := make([]domain.Memo, 0, len(r.memos))
	for id := int64(1); id <= r.nextID; id++ {
		if m, ok := r.memos[id]; ok {
			out = append(out, *cloneMemo(m))
		}
	}
	return out, nil
}

func (r *stubMemoRepo) Update(_ context.Context, memo *domain.Memo) error {
	if _, ok := r.memos[memo.ID]; !ok {
		return domain.ErrMemoNotFound
	}
	r.memos[memo.ID] = cloneMemo(memo)
	return nil
}

func (r *stubMemoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.memos[id]; !ok {
		return domain.ErrMemoNotFound
	}
	delete(r.memos, id)
	return nil
}

type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[int64]*domain.Comment)}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	copy := cloneComment(comment)
	copy.ID = r.nextID
	r.comments[copy.ID] = cloneComment(copy)
	return cloneComment(copy), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r *stubCommentRepo) FindByMemoID(_ context.Context, memoID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.MemoID == memoID {
			out = append(out, *cloneComment(c))
		}
	}
	return out, nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	r.comments[comment.ID] = cloneComment(comment)
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByMemoID(_ context.Context, memoID int64) error {
	for id, c := range r.comments {
		if c.MemoID == memoID {
			delete(r.comments, id)
		}
	}
	return nil
}

// stubAudit collects events synchronously.
type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

// stubThrottle counts failures in memory; lock after max.
type stubThrottle struct {
	failures map[string]int64
	max      int64
	err      error
}

func newStubThrottle(max int64) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int64), max: max}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[username] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	if t.err != nil {
		return t.err
	}
	delete(t.failures, username)
	return nil
}
