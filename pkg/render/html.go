package render

import (
	"fmt"
	"html/template"
	"io"
)

// Routes the HTML page posts its actions to. pkg/server mounts handlers on them.
const (
	RouteSubmit    = "/notes"
	RouteDelete    = "/notes/%d/delete"
	RouteSummarize = "/notes/%d/summarize"
)

// FormState prefills the composition form. EditingID is zero in create mode.
type FormState struct {
	EditingID int64
	Text      string
	Category  string
}

// Summary is an AI summary shown under the card of NoteID.
type Summary struct {
	NoteID int64
	Text   string
	Failed bool
}

// PageData carries the form state rendered around the cards.
type PageData struct {
	Title      string
	Search     string
	Category   string
	Categories []string
	Form       FormState
	Summary    *Summary
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"submitURL":    func() string { return RouteSubmit },
	"deleteURL":    func(id int64) string { return fmt.Sprintf(RouteDelete, id) },
	"summarizeURL": func(id int64) string { return fmt.Sprintf(RouteSummarize, id) },
}).Parse(pageTemplate))

type pageModel struct {
	PageData
	View   View
	Labels FormLabels
}

// HTML writes a complete page for the view. Note text is escaped, never interpreted.
func HTML(w io.Writer, view View, data PageData) error {
	if data.Title == "" {
		data.Title = "jotter"
	}
	return page.Execute(w, pageModel{PageData: data, View: view, Labels: lookup(view.Locale).form})
}

const pageTemplate = `<!DOCTYPE html>
<html lang="{{.View.Locale}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;max-width:720px;margin:2rem auto;padding:0 1rem;color:#222}
textarea{width:100%;min-height:5rem}
.note-card{border:1px solid #ddd;border-radius:8px;padding:.75rem 1rem;margin:.75rem 0}
.note-card p{white-space:pre-wrap}
.category{font-size:.75rem;text-transform:uppercase;color:#2b6cb0;font-weight:bold}
.timestamp{font-size:.75rem;color:#777}
.actions{display:flex;gap:.5rem;margin:.5rem 0}
.actions form{margin:0}
.summary{background:#f5f7fb;border-left:3px solid #2b6cb0;padding:.5rem}
.summary.failed{border-color:#c53030}
.placeholder{text-align:center;color:#777}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="post" action="{{submitURL}}" id="note-form">
<input type="hidden" name="q" value="{{.Search}}">
<input type="hidden" name="filter" value="{{.Category}}">
{{- if .Form.EditingID}}
<input type="hidden" name="editing" value="{{.Form.EditingID}}">
{{- end}}
<textarea name="text" placeholder="{{.Labels.Compose}}" required>{{.Form.Text}}</textarea>
<select name="category">
<option value="">-</option>
{{- range .Categories}}
<option value="{{.}}"{{if eq . $.Form.Category}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
{{- if .Form.EditingID}}
<button type="submit">{{.Labels.Update}}</button>
<a href="/?q={{.Search}}&amp;category={{.Category}}">{{.Labels.Cancel}}</a>
{{- else}}
<button type="submit">{{.Labels.Save}}</button>
{{- end}}
</form>
<form method="get" action="/">
<input type="search" name="q" value="{{.Search}}">
<select name="category">
<option value="">*</option>
{{- range .Categories}}
<option value="{{.}}"{{if eq . $.Category}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<button type="submit">&#128269;</button>
</form>
<section id="notes">
{{- if .View.Empty}}
<p class="placeholder">{{.View.Placeholder}}</p>
{{- else}}
{{- range .View.Cards}}
{{- $id := .ID}}
<div class="note-card" data-id="{{.ID}}">
<div class="category">{{.Category}}</div>
<p>{{.Text}}</p>
<div class="actions">
{{- range .Actions}}
{{- if eq .Kind "edit"}}
<form method="get" action="/">
<input type="hidden" name="q" value="{{$.Search}}">
<input type="hidden" name="category" value="{{$.Category}}">
<input type="hidden" name="edit" value="{{.NoteID}}">
<button type="submit" class="edit-btn">{{.Label}}</button>
</form>
{{- else if eq .Kind "delete"}}
<form method="post" action="{{deleteURL .NoteID}}" onsubmit="return confirm({{$.Labels.ConfirmDelete}})">
<input type="hidden" name="q" value="{{$.Search}}">
<input type="hidden" name="filter" value="{{$.Category}}">
<button type="submit" class="delete-btn">{{.Label}}</button>
</form>
{{- else if eq .Kind "summarize"}}
<form method="post" action="{{summarizeURL .NoteID}}">
<input type="hidden" name="q" value="{{$.Search}}">
<input type="hidden" name="filter" value="{{$.Category}}">
<button type="submit" class="summarize-btn">{{.Label}}</button>
</form>
{{- end}}
{{- end}}
</div>
{{- with $.Summary}}{{if eq .NoteID $id}}
<div class="summary{{if .Failed}} failed{{end}}"><strong>{{$.Labels.Summary}}:</strong> {{.Text}}</div>
{{- end}}{{end}}
<div class="timestamp">{{.Date}}</div>
</div>
{{- end}}
{{- end}}
</section>
</body>
</html>
`
