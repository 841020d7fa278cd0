package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/go-chi/chi/v5"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/summarize"
)

type noteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type summarizeRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrReadOnly):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid note id %q", core.ErrValidation, raw)
	}
	return id, nil
}

func noteID(r *http.Request) (int64, error) {
	return parseID(chi.URLParam(r, "id"))
}

func criteria(r *http.Request) core.Criteria {
	q := r.URL.Query()
	return core.Criteria{Search: q.Get("q"), Category: q.Get("category")}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.service.Search(r.Context(), criteria(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	note, err := s.service.Create(r.Context(), req.Text, req.Category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	note, err := s.service.FindByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	note, err := s.service.Update(r.Context(), id, req.Text, req.Category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	removed, err := s.service.Remove(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": core.Categories()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := map[string]any{"service": s.service.State()}
	if st, ok := s.service.Store().(introspection.Introspectable); ok {
		state["store"] = st.State()
	}
	writeJSON(w, http.StatusOK, state)
}

// handleSummarize keeps the credential on the server: clients send only text.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	res, err := s.summarizer.Summarize(r.Context(), req.Text)
	switch {
	case errors.Is(err, summarize.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, "Summarizer API key is not configured on the server.")
		return
	case err != nil:
		s.fail(w, r, err)
		return
	case res.Failed:
		writeError(w, http.StatusInternalServerError, "Failed to summarize text.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": res.Text})
}
