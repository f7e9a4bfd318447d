package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chris/unhook/internal/coach"
	"github.com/chris/unhook/internal/db"
	"github.com/chris/unhook/internal/llm"
	"github.com/chris/unhook/internal/streak"
)

type streakJSON struct {
	Count       int    `json:"count"`
	LastSuccess string `json:"last_success,omitempty"`
}

func toStreakJSON(st streak.State) streakJSON {
	out := streakJSON{Count: st.Count}
	if !st.LastSuccess.IsZero() {
		out.LastSuccess = st.LastSuccess.Format("2006-01-02")
	}
	return out
}

type urgeResponse struct {
	Message string     `json:"message"`
	Streak  streakJSON `json:"streak"`
}

type hobbiesRequest struct {
	Interests string `json:"interests"`
}

type hobbiesResponse struct {
	Suggestions []string `json:"suggestions"`
	Raw         string   `json:"raw"`
}

func (s *Server) handleUrge(w http.ResponseWriter, r *http.Request) {
	res, err := s.coach.Complete(r.Context(), coach.BreakUrge, "")
	if err != nil {
		s.logCompletion(coach.BreakUrge, err)
		s.completionError(w, r, err)
		return
	}
	s.logCompletion(coach.BreakUrge, nil)

	st, err := s.tracker.RecordSuccess(time.Now())
	if err != nil {
		s.logger.Error("recording streak", "error", err, "request_id", reqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "could not update streak")
		return
	}

	writeJSON(w, http.StatusOK, urgeResponse{Message: res.Text, Streak: toStreakJSON(st)})
}

func (s *Server) handleHobbies(w http.ResponseWriter, r *http.Request) {
	var req hobbiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.coach.Complete(r.Context(), coach.SuggestHobby, req.Interests)
	if err != nil {
		s.logCompletion(coach.SuggestHobby, err)
		s.completionError(w, r, err)
		return
	}
	s.logCompletion(coach.SuggestHobby, nil)

	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, hobbiesResponse{Suggestions: suggestions, Raw: res.Text})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	st, err := s.tracker.Current()
	if err != nil {
		s.logger.Error("loading streak", "error", err, "request_id", reqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "could not load streak")
		return
	}
	writeJSON(w, http.StatusOK, toStreakJSON(st))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	stats, err := s.db.GetStats(days, time.Now().In(s.loc))
	if err != nil {
		s.logger.Error("loading stats", "error", err, "request_id", reqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.db.RecentCompletions(limit)
	if err != nil {
		s.logger.Error("loading history", "error", err, "request_id", reqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	if entries == nil {
		entries = []db.CompletionEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// logCompletion records the attempt in the history log. Log failures are
// non-fatal for the request.
func (s *Server) logCompletion(useCase coach.UseCase, completionErr error) {
	outcome, detail := "ok", ""
	if completionErr != nil {
		outcome, detail = "error", completionErr.Error()
	}
	today := streak.DayOf(time.Now(), s.loc)
	if _, err := s.db.LogCompletion(string(useCase), outcome, detail, today); err != nil {
		s.logger.Error("logging completion", "error", err)
	}
}

// completionError maps the llm failure taxonomy to a status code and a short
// human-readable message. The streak is never touched on any of these paths.
func (s *Server) completionError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("completion failed", "error", err, "request_id", reqID(r.Context()))

	var httpErr *llm.HTTPError
	var transportErr *llm.TransportError
	var decodeErr *llm.DecodeError
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		writeError(w, http.StatusServiceUnavailable, "no API credential configured")
	case errors.Is(err, llm.ErrEmptyResult):
		writeError(w, http.StatusBadGateway, "the completion service returned nothing")
	case errors.As(err, &httpErr):
		writeError(w, http.StatusBadGateway, httpErr.Error())
	case errors.As(err, &decodeErr):
		writeError(w, http.StatusBadGateway, "the completion service returned an unreadable response")
	case errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, "could not reach the completion service")
	default:
		writeError(w, http.StatusInternalServerError, "completion failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
