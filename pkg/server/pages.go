package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aretw0/jotter/pkg/app"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
	"github.com/aretw0/jotter/pkg/summarize"
)

// controller builds a per-request Controller seeded with the page filters.
// The browser carries the view state in query strings and hidden form fields.
func (s *Server) controller(search, category string) (*app.Controller, error) {
	ctrl := app.NewController(s.service,
		app.WithSummarizer(s.summarizer),
		app.WithRenderOptions(s.renderOpts...),
		app.WithLogger(s.logger),
	)
	ctrl.SetSearch(search)
	if err := ctrl.SetCategory(category); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (s *Server) failPage(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("page request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	http.Error(w, msg, status)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, ctrl *app.Controller, form render.FormState, summary *render.Summary) {
	view, err := ctrl.View(r.Context())
	if err != nil {
		s.failPage(w, r, err)
		return
	}

	st := ctrl.State()
	data := render.PageData{
		Search:     st.Search,
		Category:   st.Category,
		Categories: core.Categories(),
		Form:       form,
		Summary:    summary,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, view, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

// redirectHome sends the browser back to the list with its filters intact.
func redirectHome(w http.ResponseWriter, r *http.Request, st app.ViewState) {
	v := url.Values{}
	if st.Search != "" {
		v.Set("q", st.Search)
	}
	if st.Category != "" {
		v.Set("category", st.Category)
	}
	target := "/"
	if len(v) > 0 {
		target += "?" + v.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formController parses a posted page form and restores its filters.
func (s *Server) formController(w http.ResponseWriter, r *http.Request) (*app.Controller, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return nil, false
	}
	ctrl, err := s.controller(r.PostForm.Get("q"), r.PostForm.Get("filter"))
	if err != nil {
		s.failPage(w, r, err)
		return nil, false
	}
	return ctrl, true
}

// handleIndex renders the list. ?edit=<id> opens that note in the form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctrl, err := s.controller(q.Get("q"), q.Get("category"))
	if err != nil {
		s.failPage(w, r, err)
		return
	}

	var form render.FormState
	if raw := q.Get("edit"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			s.failPage(w, r, err)
			return
		}
		note, err := ctrl.BeginEdit(r.Context(), id)
		if err != nil {
			s.failPage(w, r, err)
			return
		}
		form = render.FormState{EditingID: note.ID, Text: note.Text, Category: note.Category}
	}
	s.renderPage(w, r, ctrl, form, nil)
}

// handleSubmitForm creates a note, or updates the one named by the editing field.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.formController(w, r)
	if !ok {
		return
	}

	if raw := r.PostForm.Get("editing"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			s.failPage(w, r, err)
			return
		}
		if _, err := ctrl.BeginEdit(r.Context(), id); err != nil {
			s.failPage(w, r, err)
			return
		}
	}

	if _, _, err := ctrl.Submit(r.Context(), r.PostForm.Get("text"), r.PostForm.Get("category")); err != nil {
		s.failPage(w, r, err)
		return
	}
	redirectHome(w, r, ctrl.State())
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.formController(w, r)
	if !ok {
		return
	}
	id, err := noteID(r)
	if err != nil {
		s.failPage(w, r, err)
		return
	}
	if _, err := ctrl.Delete(r.Context(), id); err != nil {
		s.failPage(w, r, err)
		return
	}
	redirectHome(w, r, ctrl.State())
}

// handleSummarizeForm re-renders the list with the summary under the note's card.
func (s *Server) handleSummarizeForm(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.formController(w, r)
	if !ok {
		return
	}
	id, err := noteID(r)
	if err != nil {
		s.failPage(w, r, err)
		return
	}

	res, err := ctrl.Summarize(r.Context(), id)
	summary := &render.Summary{NoteID: id, Text: res.Text, Failed: res.Failed}
	switch {
	case errors.Is(err, summarize.ErrConfiguration):
		s.logger.Warn("summarize requested without a configured summarizer", "id", id)
		locale := render.Render(nil, s.renderOpts...).Locale
		summary.Text, summary.Failed = summarize.FallbackMessage(locale), true
	case err != nil:
		s.failPage(w, r, err)
		return
	}
	s.renderPage(w, r, ctrl, render.FormState{}, summary)
}
