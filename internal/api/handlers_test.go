package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/unhook/internal/coach"
	"github.com/chris/unhook/internal/db"
	"github.com/chris/unhook/internal/llm"
	"github.com/chris/unhook/internal/streak"
)

type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Text: s.text}, nil
}

func newTestServer(t *testing.T, client llm.Client) (*Server, *db.DB) {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	tracker := streak.NewTracker(database.StreakStore(), time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(coach.New(client), tracker, database, time.UTC, logger), database
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleUrge_SuccessRecordsStreak(t *testing.T) {
	srv, database := newTestServer(t, &stubClient{text: "Breathe. It passes."})
	router := srv.Router()

	rec := doJSON(t, router, "POST", "/api/v1/urge", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp urgeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Message != "Breathe. It passes." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.Streak.Count != 1 {
		t.Errorf("expected streak count 1, got %d", resp.Streak.Count)
	}

	// Second call the same day: still 1.
	rec = doJSON(t, router, "POST", "/api/v1/urge", "")
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Streak.Count != 1 {
		t.Errorf("expected streak count still 1 within a day, got %d", resp.Streak.Count)
	}

	entries, err := database.RecentCompletions(10)
	if err != nil {
		t.Fatalf("RecentCompletions: %v", err)
	}
	if len(entries) != 2 || entries[0].Outcome != "ok" {
		t.Errorf("expected 2 ok log entries, got %+v", entries)
	}
}

func TestHandleUrge_EmptyResultLeavesStreakUntouched(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{err: llm.ErrEmptyResult})
	router := srv.Router()

	rec := doJSON(t, router, "POST", "/api/v1/urge", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/v1/streak", "")
	var st streakJSON
	json.Unmarshal(rec.Body.Bytes(), &st)
	if st.Count != 0 {
		t.Errorf("streak mutated on failure path: count %d", st.Count)
	}
}

func TestHandleUrge_UpstreamHTTPError(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{err: &llm.HTTPError{Status: 401, Excerpt: "invalid api key"}})

	rec := doJSON(t, srv.Router(), "POST", "/api/v1/urge", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "401") {
		t.Errorf("expected upstream status in message, got %s", rec.Body.String())
	}
}

func TestHandleUrge_MissingCredential(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{err: llm.ErrMissingCredential})

	rec := doJSON(t, srv.Router(), "POST", "/api/v1/urge", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleHobbies(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{text: "1. Try pottery\n2. Go hiking"})

	rec := doJSON(t, srv.Router(), "POST", "/api/v1/hobbies", `{"interests":"the outdoors"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp hobbiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Suggestions) != 2 || resp.Suggestions[1] != "Go hiking" {
		t.Errorf("unexpected suggestions: %v", resp.Suggestions)
	}
}

func TestHandleHobbies_BadBody(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{text: "x"})

	rec := doJSON(t, srv.Router(), "POST", "/api/v1/hobbies", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleStreak_InitialState(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{text: "x"})

	rec := doJSON(t, srv.Router(), "GET", "/api/v1/streak", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var st streakJSON
	json.Unmarshal(rec.Body.Bytes(), &st)
	if st.Count != 0 || st.LastSuccess != "" {
		t.Errorf("expected zero streak, got %+v", st)
	}
}

func TestHandleStats(t *testing.T) {
	srv, database := newTestServer(t, &stubClient{text: "x"})
	database.LogCompletion("urge", "ok", "", time.Now().UTC())

	rec := doJSON(t, srv.Router(), "GET", "/api/v1/stats?days=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats db.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.UrgeOK != 1 {
		t.Errorf("expected 1 urge success, got %d", stats.UrgeOK)
	}

	rec = doJSON(t, srv.Router(), "GET", "/api/v1/stats?days=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad days param, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t, &stubClient{text: "x"})

	rec := doJSON(t, srv.Router(), "GET", "/healthz", "")
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on response")
	}
}
