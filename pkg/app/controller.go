// Package app holds the interactive state of a jotter front end: the current
// search, the selected category and the note being edited.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
	"github.com/aretw0/jotter/pkg/summarize"
)

// ViewState is the user-facing state that survives between redraws.
// EditingID is zero when the form creates a new note.
type ViewState struct {
	Search    string `json:"search"`
	Category  string `json:"category"`
	EditingID int64  `json:"editing_id,omitempty"`
}

// Controller mediates between form input, the note service and the renderer.
type Controller struct {
	service    *core.Service
	summarizer *summarize.Gateway
	renderOpts []render.Option
	logger     *slog.Logger

	mu    sync.Mutex
	state ViewState
}

// Option configures a Controller.
type Option func(*Controller)

// WithSummarizer enables the summarize action.
func WithSummarizer(g *summarize.Gateway) Option {
	return func(c *Controller) { c.summarizer = g }
}

// WithRenderOptions forwards locale and time zone to the renderer.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *Controller) { c.renderOpts = append(c.renderOpts, opts...) }
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a Controller with an empty ViewState.
func NewController(service *core.Service, opts ...Option) *Controller {
	c := &Controller{service: service, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit creates a note, or updates the one being edited.
// Blank text is ignored: it reports false and leaves the edit target in place.
func (c *Controller) Submit(ctx context.Context, text, category string) (core.Note, bool, error) {
	if strings.TrimSpace(text) == "" {
		return core.Note{}, false, nil
	}

	c.mu.Lock()
	editing := c.state.EditingID
	c.mu.Unlock()

	var (
		note core.Note
		err  error
	)
	if editing != 0 {
		note, err = c.service.Update(ctx, editing, text, category)
	} else {
		note, err = c.service.Create(ctx, text, category)
	}
	if err != nil {
		return core.Note{}, false, err
	}

	if editing != 0 {
		c.CancelEdit()
	}
	return note, true, nil
}

// BeginEdit marks id as the edit target and returns the note to prefill the form.
func (c *Controller) BeginEdit(ctx context.Context, id int64) (core.Note, error) {
	note, err := c.service.FindByID(ctx, id)
	if err != nil {
		return core.Note{}, err
	}

	c.mu.Lock()
	c.state.EditingID = id
	c.mu.Unlock()
	return note, nil
}

// CancelEdit returns the form to create mode.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.state.EditingID = 0
	c.mu.Unlock()
}

// SetSearch updates the search term.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.state.Search = term
	c.mu.Unlock()
}

// SetCategory updates the category filter. "" or "all" clears it.
func (c *Controller) SetCategory(category string) error {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != core.CategoryAll {
		normalized, err := core.NormalizeCategory(category)
		if err != nil {
			return err
		}
		category = normalized
	}

	c.mu.Lock()
	c.state.Category = category
	c.mu.Unlock()
	return nil
}

// Visible returns the notes matching the current search and category.
func (c *Controller) Visible(ctx context.Context) ([]core.Note, error) {
	st := c.State()
	return c.service.Search(ctx, core.Criteria{Search: st.Search, Category: st.Category})
}

// View renders the visible notes.
func (c *Controller) View(ctx context.Context) (render.View, error) {
	notes, err := c.Visible(ctx)
	if err != nil {
		return render.View{}, err
	}
	return render.Render(notes, c.renderOpts...), nil
}

// Delete removes a note. Deleting the note under edit cancels the edit.
func (c *Controller) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := c.service.Remove(ctx, id)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	if c.state.EditingID == id {
		c.state.EditingID = 0
	}
	c.mu.Unlock()

	if removed {
		c.logger.Debug("note deleted from view", "id", id)
	}
	return removed, nil
}

// Summarize summarizes the text of note id. Without a gateway it reports
// summarize.ErrConfiguration.
func (c *Controller) Summarize(ctx context.Context, id int64) (summarize.Result, error) {
	if c.summarizer == nil {
		return summarize.Result{}, summarize.ErrConfiguration
	}
	note, err := c.service.FindByID(ctx, id)
	if err != nil {
		return summarize.Result{}, err
	}
	return c.summarizer.Summarize(ctx, note.Text)
}
