package post

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/auth"
	"github.com/devlinkhq/devlink-api/internal/logging"
)

func newTestRouter(svc *Service) *chi.Mux {
	h := NewHandler(svc, logging.NewLogger(true))
	r := chi.NewRouter()
	r.Delete("/api/posts/{id}", h.Delete)
	r.Put("/api/posts/{id}/like", h.Like)
	return r
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	msgs := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

func TestDeleteHandlerNotOwner(t *testing.T) {
	store := newFakePostStore()
	svc, author := newTestService(store)
	router := newTestRouter(svc)

	p, err := svc.Create(context.Background(), author.ID, "hi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(req, uuid.New()))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	msgs := decodeEnvelope(t, rec)
	if len(msgs) != 1 || msgs[0] != "post cannot be deleted" {
		t.Fatalf("unexpected envelope: %v", msgs)
	}
}

func TestDeleteHandlerMalformedID(t *testing.T) {
	store := newFakePostStore()
	svc, author := newTestService(store)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(req, author.ID))

	// Malformed ids map to the same 400 as unknown ids.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	msgs := decodeEnvelope(t, rec)
	if len(msgs) != 1 || msgs[0] != "post not found" {
		t.Fatalf("unexpected envelope: %v", msgs)
	}
}

func TestLikeHandlerRepeatReturnsMessage(t *testing.T) {
	store := newFakePostStore()
	svc, author := newTestService(store)
	router := newTestRouter(svc)

	p, err := svc.Create(context.Background(), author.ID, "hi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	liker := uuid.New()
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPut, "/api/posts/"+p.ID.String()+"/like", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asUser(req, liker))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
		}

		var body struct {
			Msg   string      `json:"msg"`
			Likes []uuid.UUID `json:"likes"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Likes) != 1 {
			t.Fatalf("attempt %d: expected 1 like, got %d", i+1, len(body.Likes))
		}
		if i == 0 && body.Msg != "" {
			t.Fatalf("first like should not carry a message, got %q", body.Msg)
		}
		if i == 1 && body.Msg == "" {
			t.Fatal("repeat like should carry an informational message")
		}
	}
}
