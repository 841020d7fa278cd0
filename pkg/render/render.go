// Package render turns a list of notes into a display model and encodes it
// for terminals, browsers and machine consumers.
//
// Rendering is stateless: every call produces the complete view from the
// notes it is given.
package render

import (
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// Action kinds bound to each card.
const (
	ActionEdit      = "edit"
	ActionDelete    = "delete"
	ActionSummarize = "summarize"
)

// Action is a user control attached to one note.
type Action struct {
	Kind   string `json:"kind" yaml:"kind"`
	Label  string `json:"label" yaml:"label"`
	NoteID int64  `json:"note_id" yaml:"note_id"`
	// Text is only set for summarize, which needs the note body.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Card is the display form of a single note.
type Card struct {
	ID       int64    `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Text     string   `json:"text" yaml:"text"`
	Date     string   `json:"date" yaml:"date"`
	Actions  []Action `json:"actions" yaml:"actions"`
}

// View is the full rendered collection.
type View struct {
	Cards       []Card `json:"cards" yaml:"cards"`
	Empty       bool   `json:"empty" yaml:"empty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Locale      string `json:"locale" yaml:"locale"`
}

type options struct {
	locale   string
	location *time.Location
}

// Option configures Render.
type Option func(*options)

// WithLocale selects labels and date format. Unknown locales fall back to LocaleID.
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithLocation sets the time zone used for dates. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// Render builds the view for notes in the given order.
func Render(notes []core.Note, opts ...Option) View {
	o := options{locale: LocaleID, location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}
	lang := lookup(o.locale)
	if o.location == nil {
		o.location = time.Local
	}

	view := View{Cards: make([]Card, 0, len(notes)), Locale: lang.code}
	if len(notes) == 0 {
		view.Empty = true
		view.Placeholder = lang.placeholder
		return view
	}

	for _, n := range notes {
		view.Cards = append(view.Cards, Card{
			ID:       n.ID,
			Category: n.Category,
			Text:     n.Text,
			Date:     lang.formatDate(time.UnixMilli(n.Timestamp).In(o.location)),
			Actions: []Action{
				{Kind: ActionEdit, Label: lang.labels[ActionEdit], NoteID: n.ID},
				{Kind: ActionDelete, Label: lang.labels[ActionDelete], NoteID: n.ID},
				{Kind: ActionSummarize, Label: lang.labels[ActionSummarize], NoteID: n.ID, Text: n.Text},
			},
		})
	}
	return view
}
