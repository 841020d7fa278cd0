package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/app"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
	"github.com/aretw0/jotter/pkg/summarize"
)

type memStore struct {
	mu    sync.Mutex
	notes []core.Note
}

func (m *memStore) Load(ctx context.Context) ([]core.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Note{}, m.notes...), nil
}

func (m *memStore) Save(ctx context.Context, notes []core.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append([]core.Note{}, notes...)
	return nil
}

func newController(t *testing.T, opts ...app.Option) *app.Controller {
	t.Helper()
	clock := time.UnixMilli(1_700_000_000_000)
	svc := core.NewService(&memStore{}, core.WithClock(func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}))
	return app.NewController(svc, opts...)
}

func TestController_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates When Not Editing", func(t *testing.T) {
		c := newController(t)
		note, ok, err := c.Submit(ctx, "Buy milk", "todo")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Buy milk", note.Text)

		notes, err := c.Visible(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})

	t.Run("Blank Text Is Ignored", func(t *testing.T) {
		c := newController(t)
		_, ok, err := c.Submit(ctx, "   ", "todo")
		require.NoError(t, err)
		assert.False(t, ok)

		notes, err := c.Visible(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("Updates Edit Target In Place", func(t *testing.T) {
		c := newController(t)
		first, _, err := c.Submit(ctx, "first", "work")
		require.NoError(t, err)
		_, _, err = c.Submit(ctx, "second", "work")
		require.NoError(t, err)

		prefill, err := c.BeginEdit(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", prefill.Text)
		assert.Equal(t, first.ID, c.State().EditingID)

		updated, ok, err := c.Submit(ctx, "first, revised", "ideas")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, first.ID, updated.ID)
		assert.Zero(t, c.State().EditingID)

		notes, err := c.Visible(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "second", notes[0].Text)
		assert.Equal(t, "first, revised", notes[1].Text)
	})

	t.Run("Cancel Edit Returns To Create", func(t *testing.T) {
		c := newController(t)
		n, _, err := c.Submit(ctx, "keep", "work")
		require.NoError(t, err)
		_, err = c.BeginEdit(ctx, n.ID)
		require.NoError(t, err)
		c.CancelEdit()

		_, _, err = c.Submit(ctx, "new one", "work")
		require.NoError(t, err)
		notes, err := c.Visible(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 2)
	})

	t.Run("BeginEdit Unknown Id", func(t *testing.T) {
		c := newController(t)
		_, err := c.BeginEdit(ctx, 99)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Zero(t, c.State().EditingID)
	})
}

func TestController_Filtering(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	for _, in := range []struct{ text, cat string }{
		{"Buy milk", "todo"},
		{"Team sync", "work"},
		{"Milk tea idea", "ideas"},
	} {
		_, _, err := c.Submit(ctx, in.text, in.cat)
		require.NoError(t, err)
	}

	c.SetSearch("MILK")
	notes, err := c.Visible(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	require.NoError(t, c.SetCategory("todo"))
	notes, err = c.Visible(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Buy milk", notes[0].Text)

	require.NoError(t, c.SetCategory("all"))
	c.SetSearch("")
	notes, err = c.Visible(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 3)

	assert.ErrorIs(t, c.SetCategory("groceries"), core.ErrValidation)
}

func TestController_View(t *testing.T) {
	ctx := context.Background()
	c := newController(t, app.WithRenderOptions(render.WithLocale(render.LocaleEN)))

	view, err := c.View(ctx)
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, "No matching notes.", view.Placeholder)

	_, _, err = c.Submit(ctx, "hello", "")
	require.NoError(t, err)
	view, err = c.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Cards, 1)
	assert.Equal(t, core.CategoryNone, view.Cards[0].Category)
}

func TestController_Delete(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	n, _, err := c.Submit(ctx, "bye", "other")
	require.NoError(t, err)
	_, err = c.BeginEdit(ctx, n.ID)
	require.NoError(t, err)

	removed, err := c.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, c.State().EditingID)

	removed, err = c.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

type echoClient struct{ prompts []string }

func (e *echoClient) Complete(ctx context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	return "summary", nil
}

func TestController_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("Without Gateway", func(t *testing.T) {
		c := newController(t)
		n, _, err := c.Submit(ctx, "text", "work")
		require.NoError(t, err)
		_, err = c.Summarize(ctx, n.ID)
		assert.ErrorIs(t, err, summarize.ErrConfiguration)
	})

	t.Run("Uses Note Text", func(t *testing.T) {
		client := &echoClient{}
		c := newController(t, app.WithSummarizer(summarize.NewGateway(client)))
		n, _, err := c.Submit(ctx, "a very long note", "work")
		require.NoError(t, err)

		res, err := c.Summarize(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, "summary", res.Text)
		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "a very long note")
	})

	t.Run("Unknown Note", func(t *testing.T) {
		c := newController(t, app.WithSummarizer(summarize.NewGateway(&echoClient{})))
		_, err := c.Summarize(ctx, 5)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
