package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/core/domain"
	"github.com/memoboard/memo-api/internal/core/password"
	"github.com/memoboard/memo-api/internal/core/service"
	"github.com/memoboard/memo-api/internal/core/token"
)

// In-memory collaborators for full-stack request tests.

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = user.Username
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memMemoRepo struct {
	memos  map[int64]*domain.Memo
	nextID int64
	writes int
}

func (r *memMemoRepo) Create(_ context.Context, memo *domain.Memo) (*domain.Memo, error) {
	r.nextID++
	r.writes++
	clone := *memo
	clone.ID = r.nextID
	r.memos[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memMemoRepo) FindByID(_ context.Context, id int64) (*domain.Memo, error) {
	m, ok := r.memos[id]
	if !ok {
		return nil, domain.ErrMemoNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *memMemoRepo) FindAll(_ context.Context) ([]domain.Memo, error) {
	var out []domain.Memo
	for id := int64(1); id <= r.nextID; id++ {
		if m, ok := r.memos[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memMemoRepo) Update(_ context.Context, memo *domain.Memo) error {
	if _, ok := r.memos[memo.ID]; !ok {
		return domain.ErrMemoNotFound
	}
	r.writes++
	clone := *memo
	r.memos[memo.ID] = &clone
	return nil
}

func (r *memMemoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.memos[id]; !ok {
		return domain.ErrMemoNotFound
	}
	r.writes++
	delete(r.memos, id)
	return nil
}

type memCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func (r *memCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.nextID++
	clone := *comment
	clone.ID = r.nextID
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCommentRepo) FindByMemoID(_ context.Context, memoID int64) ([]domain.Comment, error) {
	var out []domain.Comment
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.MemoID == memoID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *memCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *memCommentRepo) DeleteByMemoID(_ context.Context, memoID int64) error {
	for id, c := range r.comments {
		if c.MemoID == memoID {
			delete(r.comments, id)
		}
	}
	return nil
}

type memThrottle struct{}

func (memThrottle) TooManyFailures(context.Context, string) (bool, error) { return false, nil }
func (memThrottle) RecordFailure(context.Context, string) error           { return nil }
func (memThrottle) Reset(context.Context, string) error                   { return nil }

type memAudit struct{}

func (memAudit) Record(domain.AuditEvent) {}

// TestRouter_Scenarios exercises the full request pipeline: exemptions,
// token validation, principal attachment, and the ownership policy. A single
// router instance is shared because the Prometheus HTTP middleware registers
// its collectors process-wide.
func TestRouter_Scenarios(t *testing.T) {
	users := &memUserRepo{users: map[string]*domain.User{}}
	memos := &memMemoRepo{memos: map[int64]*domain.Memo{}}
	comments := &memCommentRepo{comments: map[int64]*domain.Comment{}}

	codec := token.NewCodec("test-secret", time.Hour)
	hasher := password.NewHasher(4)
	audit := memAudit{}
	log := zerolog.Nop()

	authService := service.NewAuthService(users, hasher, codec, "admintoken", memThrottle{}, audit, log)
	memoService := service.NewMemoService(memos, comments, audit, log)
	commentService := service.NewCommentService(comments, memos, audit, log)

	e := NewRouter(Deps{
		Codec:          codec,
		Users:          users,
		AuthService:    authService,
		MemoService:    memoService,
		CommentService: commentService,
		Audit:          audit,
		TokenTTL:       time.Hour,
		Log:            log,
	})

	do := func(method, path, body, bearer string) *httptest.ResponseRecorder {
		var reader *strings.Reader
		if body == "" {
			reader = strings.NewReader("")
		} else {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if bearer != "" {
			req.Header.Set(token.HeaderName, "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	var aliceToken, bobToken string
	var aliceMemoID, bobMemoID int64

	t.Run("signup without token passes through", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/user/signup", `{"username":"alice1","password":"Secret123!"}`, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		rec = do(http.MethodPost, "/api/user/signup", `{"username":"bob22","password":"Secret123!"}`, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("duplicate signup conflicts", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/user/signup", `{"username":"alice1","password":"Secret123!"}`, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("login sets carrier and returns envelope", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/user/login", `{"username":"alice1","password":"Secret123!"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Token   string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Status != "200" || body.Token == "" {
			t.Fatalf("unexpected envelope: %+v", body)
		}
		cookieSet := false
		for _, ck := range rec.Result().Cookies() {
			if ck.Name == token.CookieName && ck.Value == body.Token {
				cookieSet = true
			}
		}
		if !cookieSet {
			t.Fatalf("credential cookie not set")
		}
		aliceToken = body.Token

		rec = do(http.MethodPost, "/api/user/login", `{"username":"bob22","password":"Secret123!"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("bob login failed: %d", rec.Code)
		}
		var bobBody struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &bobBody)
		bobToken = bobBody.Token
	})

	t.Run("login failure is uniform", func(t *testing.T) {
		unknown := do(http.MethodPost, "/api/user/login", `{"username":"nobody","password":"Secret123!"}`, "")
		badPass := do(http.MethodPost, "/api/user/login", `{"username":"alice1","password":"WrongPass1!"}`, "")
		if unknown.Code != http.StatusUnauthorized || badPass.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401/401, got %d/%d", unknown.Code, badPass.Code)
		}
		if unknown.Body.String() != badPass.Body.String() {
			t.Fatalf("login failures must not reveal which part failed")
		}
	})

	t.Run("protected mutation without carrier rejected with no side effects", func(t *testing.T) {
		writesBefore := memos.writes
		rec := do(http.MethodPost, "/api/memos", `{"title":"t","contents":"c"}`, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body.Status != "400" {
			t.Fatalf("expected envelope status 400, got %q", body.Status)
		}
		if memos.writes != writesBefore {
			t.Fatalf("rejected request must not touch the resource store")
		}
	})

	t.Run("paths beyond the user namespace require a credential", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/userdata", "", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		mutated := aliceToken + "x"
		rec := do(http.MethodPost, "/api/memos", `{"title":"t","contents":"c"}`, mutated)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("authenticated memo creation", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/memos", `{"title":"alice memo","contents":"hers"}`, aliceToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var memo domain.Memo
		_ = json.Unmarshal(rec.Body.Bytes(), &memo)
		if memo.Username != "alice1" {
			t.Fatalf("memo owner should come from the token, got %q", memo.Username)
		}
		aliceMemoID = memo.ID

		rec = do(http.MethodPost, "/api/memos", `{"title":"bob memo","contents":"his"}`, bobToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var bobMemo domain.Memo
		_ = json.Unmarshal(rec.Body.Bytes(), &bobMemo)
		bobMemoID = bobMemo.ID
	})

	t.Run("GET without token still served", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/memos", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		rec = do(http.MethodGet, fmt.Sprintf("/api/memos/%d", aliceMemoID), "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("owner may delete own memo", func(t *testing.T) {
		rec := do(http.MethodDelete, fmt.Sprintf("/api/memos/%d", aliceMemoID), "", aliceToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("user may not delete another user's memo", func(t *testing.T) {
		rec := do(http.MethodDelete, fmt.Sprintf("/api/memos/%d", bobMemoID), "", aliceToken)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		if _, err := memos.FindByID(context.Background(), bobMemoID); err != nil {
			t.Fatalf("denied delete must leave the memo in place: %v", err)
		}
	})

	t.Run("admin may delete anything", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/user/signup",
			`{"username":"root01","password":"Secret123!","admin":true,"admin_token":"admintoken"}`, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("admin signup failed: %d: %s", rec.Code, rec.Body.String())
		}
		rec = do(http.MethodPost, "/api/user/login", `{"username":"root01","password":"Secret123!"}`, "")
		var body struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &body)

		rec = do(http.MethodDelete, fmt.Sprintf("/api/memos/%d", bobMemoID), "", body.Token)
		if rec.Code != http.StatusOK {
			t.Fatalf("admin delete failed: %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("cookie carrier works for protected routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/memos", strings.NewReader(`{"title":"via cookie","contents":"c"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: bobToken})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 via cookie, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("health is public", func(t *testing.T) {
		rec := do(http.MethodGet, "/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
