package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
)

// 2023-11-14 22:13:20 UTC, a Tuesday.
const ts = int64(1_700_000_000_000)

func sample() []core.Note {
	return []core.Note{
		{ID: 2, Text: "Call mom", Category: "personal", Timestamp: ts},
		{ID: 1, Text: "Buy milk", Category: "todo", Timestamp: ts},
	}
}

func TestRender(t *testing.T) {
	t.Run("One Card Per Note In Order", func(t *testing.T) {
		view := render.Render(sample(), render.WithLocation(time.UTC))
		assert.False(t, view.Empty)
		require.Len(t, view.Cards, 2)
		assert.Equal(t, int64(2), view.Cards[0].ID)
		assert.Equal(t, "Call mom", view.Cards[0].Text)
		assert.Equal(t, "personal", view.Cards[0].Category)
	})

	t.Run("Actions Bound To Note", func(t *testing.T) {
		view := render.Render(sample())
		actions := view.Cards[1].Actions
		require.Len(t, actions, 3)
		for _, a := range actions {
			assert.Equal(t, int64(1), a.NoteID)
		}
		assert.Equal(t, render.ActionEdit, actions[0].Kind)
		assert.Equal(t, "Hapus", actions[1].Label)
		assert.Equal(t, render.ActionSummarize, actions[2].Kind)
		assert.Equal(t, "Buy milk", actions[2].Text)
	})

	t.Run("Empty Shows Placeholder", func(t *testing.T) {
		view := render.Render(nil)
		assert.True(t, view.Empty)
		assert.Empty(t, view.Cards)
		assert.Equal(t, "Tidak ada catatan yang cocok.", view.Placeholder)

		en := render.Render([]core.Note{}, render.WithLocale(render.LocaleEN))
		assert.Equal(t, "No matching notes.", en.Placeholder)
	})

	t.Run("Indonesian Date", func(t *testing.T) {
		view := render.Render(sample(), render.WithLocation(time.UTC))
		assert.Equal(t, "Selasa, 14 November 2023 pukul 22.13", view.Cards[0].Date)
	})

	t.Run("English Date", func(t *testing.T) {
		view := render.Render(sample(), render.WithLocale(render.LocaleEN), render.WithLocation(time.UTC))
		assert.Equal(t, "Tuesday, November 14, 2023 at 22:13", view.Cards[0].Date)
		assert.Equal(t, render.LocaleEN, view.Locale)
	})

	t.Run("Time Zone Applies", func(t *testing.T) {
		jakarta := time.FixedZone("WIB", 7*3600)
		view := render.Render(sample(), render.WithLocation(jakarta))
		assert.Equal(t, "Rabu, 15 November 2023 pukul 05.13", view.Cards[0].Date)
	})

	t.Run("Unknown Locale Falls Back", func(t *testing.T) {
		view := render.Render(nil, render.WithLocale("fr"))
		assert.Equal(t, render.LocaleID, view.Locale)
	})
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Text(&buf, render.Render(sample(), render.WithLocation(time.UTC))))
	out := buf.String()
	assert.Contains(t, out, "Call mom")
	assert.Contains(t, out, "PERSONAL")
	assert.Contains(t, out, "#2")
	assert.Less(t, strings.Index(out, "Call mom"), strings.Index(out, "Buy milk"))

	buf.Reset()
	require.NoError(t, render.Text(&buf, render.Render(nil)))
	assert.Contains(t, buf.String(), "Tidak ada catatan yang cocok.")
}

func TestHTML(t *testing.T) {
	t.Run("Escapes Note Text Without Dropping It", func(t *testing.T) {
		notes := []core.Note{{ID: 9, Text: `use List<String> and <div> tags; 1 < 2 <script>alert("x")</script>`, Category: "other", Timestamp: ts}}
		var buf bytes.Buffer
		require.NoError(t, render.HTML(&buf, render.Render(notes), render.PageData{}))

		out := buf.String()
		assert.Contains(t, out, "use List&lt;String&gt; and &lt;div&gt; tags; 1 &lt; 2")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, `data-id="9"`)
	})

	t.Run("Binds Actions To Routes", func(t *testing.T) {
		notes := []core.Note{{ID: 9, Text: "x", Category: "other", Timestamp: ts}}
		var buf bytes.Buffer
		data := render.PageData{Search: "x", Category: "other", Categories: core.Categories()}
		require.NoError(t, render.HTML(&buf, render.Render(notes), data))

		out := buf.String()
		assert.Contains(t, out, `<form method="post" action="/notes" id="note-form">`)
		assert.Contains(t, out, `<form method="post" action="/notes/9/delete"`)
		assert.Contains(t, out, `<form method="post" action="/notes/9/summarize">`)
		assert.Contains(t, out, `<input type="hidden" name="edit" value="9">`)
		assert.Contains(t, out, `<input type="hidden" name="filter" value="other">`)
		assert.Contains(t, out, "Simpan Catatan")
	})

	t.Run("Shows Edit Target And Summary", func(t *testing.T) {
		notes := []core.Note{
			{ID: 9, Text: "first", Category: "work", Timestamp: ts},
			{ID: 8, Text: "second", Category: "work", Timestamp: ts},
		}
		var buf bytes.Buffer
		data := render.PageData{
			Categories: core.Categories(),
			Form:       render.FormState{EditingID: 8, Text: "second", Category: "work"},
			Summary:    &render.Summary{NoteID: 8, Text: "short <summary>"},
		}
		require.NoError(t, render.HTML(&buf, render.Render(notes, render.WithLocale(render.LocaleEN)), data))

		out := buf.String()
		assert.Contains(t, out, `<input type="hidden" name="editing" value="8">`)
		assert.Contains(t, out, `<option value="work" selected>`)
		assert.Contains(t, out, ">second</textarea>")
		assert.Contains(t, out, "Update Note")
		assert.Equal(t, 1, strings.Count(out, `class="summary"`))
		assert.Contains(t, out, "short &lt;summary&gt;")
		assert.Greater(t, strings.Index(out, "short &lt;summary&gt;"), strings.Index(out, `data-id="8"`))
	})

	t.Run("Keeps Form State", func(t *testing.T) {
		var buf bytes.Buffer
		data := render.PageData{Search: "milk", Category: "todo", Categories: core.Categories()}
		require.NoError(t, render.HTML(&buf, render.Render(nil), data))

		out := buf.String()
		assert.Contains(t, out, `value="milk"`)
		assert.Contains(t, out, `<option value="todo" selected>`)
		assert.Contains(t, out, "Tidak ada catatan yang cocok.")
	})
}

func TestEncode(t *testing.T) {
	view := render.Render(sample(), render.WithLocation(time.UTC))

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render.Encode(&buf, view, render.FormatJSON))
		var decoded render.View
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, view, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render.Encode(&buf, view, render.FormatYAML))
		var decoded render.View
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, view, decoded)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		err := render.Encode(&bytes.Buffer{}, view, "xml")
		var ufe *render.UnknownFormatError
		require.ErrorAs(t, err, &ufe)
		assert.Equal(t, "xml", ufe.Format)
	})
}
