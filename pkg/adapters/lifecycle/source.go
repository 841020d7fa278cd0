// Package lifecycle turns slot change events into redraw requests that a
// lifecycle supervisor can consume alongside its other event streams.
package lifecycle

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jotter/pkg/core"
)

// Redraw asks a front end to reload and re-render the collection.
// Changes that arrive while the consumer is busy are folded into one Redraw.
type Redraw struct {
	Slot      string
	Type      core.EventType // type of the latest folded change
	Coalesced int            // number of slot events folded into this redraw
}

// String implements lifecycle.Event.
func (r Redraw) String() string {
	return fmt.Sprintf("redraw %s (%s, %d change(s))", r.Slot, r.Type, r.Coalesced)
}

// SourceOption configures a redraw source.
type SourceOption func(*redrawSource)

// WithSlots limits the source to events for the named slots. Empty names are ignored.
func WithSlots(names ...string) SourceOption {
	return func(s *redrawSource) {
		for _, name := range names {
			if name != "" {
				s.slots = append(s.slots, name)
			}
		}
	}
}

type redrawSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	slots  []string
}

// NewSource wraps a slot event channel, typically from core.Service.Watch.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &redrawSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *redrawSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *redrawSource) accepts(e core.Event) bool {
	return len(s.slots) == 0 || slices.Contains(s.slots, e.Slot)
}

// Start runs the forwarding loop in a tracked goroutine. Events() is closed when
// ctx is cancelled, or once the input closes and any pending redraw is delivered.
func (s *redrawSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		in := s.events
		var pending *Redraw
		for {
			var send chan lifecycle.Event
			var next lifecycle.Event
			if pending != nil {
				send, next = s.out, *pending
			}

			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					if pending == nil {
						return nil
					}
					in = nil
					continue
				}
				if !s.accepts(e) {
					continue
				}
				if pending == nil {
					pending = &Redraw{Slot: e.Slot}
				}
				pending.Type = e.Type
				pending.Coalesced++
			case send <- next:
				pending = nil
				if in == nil {
					return nil
				}
			}
		}
	})
	return nil
}
