package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jotter/pkg/core"
)

// debounceDelay coalesces the burst of events one atomic write produces.
const debounceDelay = 50 * time.Millisecond

// Watch reports changes to the slot file made by any process, including this one.
// The channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The slot is replaced by rename, so the directory is watched, not the file.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.Event)
	s.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	lifecycle.Go(runCtx, func(ctx context.Context) error {
		defer cancel()
		defer close(out)
		defer s.setWatcherActive(false)
		defer watcher.Close()

		d := newDebouncer(debounceDelay)
		err := s.watchLoop(ctx, watcher, d, out)
		// Stop the debouncer before close(out) so no timer sends on a closed channel.
		cancel()
		d.stopAndWait()
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("watcher panic", "error", err)
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(err)
		}
	}))

	return out, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, d *debouncer, out chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			eType := s.mapEvent(event)
			if eType == "" {
				continue
			}
			s.config.Logger.Debug("slot changed", "type", eType, "path", event.Name)

			d.add(core.Event{Type: eType, Slot: s.config.Slot, Timestamp: time.Now().Unix()}, func(e core.Event) {
				select {
				case out <- e:
				case <-ctx.Done():
				}
			})

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.config.Logger.Error("fsnotify error", "error", wErr)
			if s.config.ErrorHandler != nil {
				s.config.ErrorHandler(wErr)
			}
		}
	}
}

// mapEvent translates an fsnotify event into a slot event, or "" to ignore it.
func (s *Store) mapEvent(event fsnotify.Event) core.EventType {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || name != s.slotFile() {
		return ""
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	}
	return ""
}

// debouncer delivers only the latest event of a burst.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = e
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, stopped := d.pending, d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(ev)
		}
	})
}

// stopAndWait drops any pending event and waits for in-flight deliveries.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	d.wg.Wait()
}
