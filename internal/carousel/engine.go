// Package carousel implements the image carousel used by every project card.
//
// An Engine owns a position in a fixed, non-empty list of image references
// and an optional full-screen preview flag. Render hosts call Next, Previous,
// Goto and the overlay methods in response to user gestures, and subscribe
// to receive every resulting State.
//
// Auto-advance is not part of the engine. A Binding schedules Tick on a Clock
// and must be disposed when the owning view goes away:
//
//	engine, err := carousel.New(project.Images, carousel.Options{AutoAdvance: 3 * time.Second})
//	if err != nil {
//	    return err
//	}
//	binding := carousel.Bind(engine, carousel.SystemClock())
//	defer binding.Dispose()
package carousel

import (
	"sync"
	"time"
)

// Options selects the capability profile of an engine.
type Options struct {
	// AutoAdvance is the tick period used by Bind. Zero or negative disables it.
	AutoAdvance time.Duration
	// Preview enables the full-screen overlay.
	Preview bool
}

// State is a snapshot of an engine, as handed to render hosts.
type State struct {
	Seq            uint64
	Index          int
	Len            int
	Image          string
	OverlayVisible bool
	Preview        bool
}

// Engine is the carousel state machine. It is safe for concurrent use; the
// timer goroutine and request handlers may call it at the same time.
type Engine struct {
	images []string
	opts   Options

	mu        sync.Mutex
	index     int
	overlay   bool
	seq       uint64
	disposed  bool
	nextSub   int
	listeners map[int]func(State)
	done      chan struct{}
}

// New creates an engine positioned at index 0 with the overlay closed.
// The images slice is copied.
func New(images []string, opts Options) (*Engine, error) {
	if len(images) == 0 {
		return nil, newError(ErrCodeEmptySequence, "carousel needs at least one image")
	}
	return &Engine{
		images:    append([]string(nil), images...),
		opts:      opts,
		listeners: make(map[int]func(State)),
		done:      make(chan struct{}),
	}, nil
}

// Next advances one image, wrapping to the first after the last.
func (e *Engine) Next() State {
	return e.mutate(func() bool {
		e.index = (e.index + 1) % len(e.images)
		return true
	})
}

// Previous moves back one image, wrapping to the last before the first.
func (e *Engine) Previous() State {
	return e.mutate(func() bool {
		n := len(e.images)
		e.index = (e.index - 1 + n) % n
		return true
	})
}

// Goto jumps to index i. Out of range indexes leave the state untouched and
// return an INVALID_INDEX error.
func (e *Engine) Goto(i int) (State, error) {
	if i < 0 || i >= len(e.images) {
		return e.State(), newError(ErrCodeInvalidIndex, "index %d out of range [0, %d)", i, len(e.images))
	}
	return e.mutate(func() bool {
		e.index = i
		return true
	}), nil
}

// Tick is the auto-advance step. It has the effect of Next and reports
// false when the engine is already disposed.
func (e *Engine) Tick() bool {
	applied := false
	e.mutate(func() bool {
		e.index = (e.index + 1) % len(e.images)
		applied = true
		return true
	})
	return applied
}

// OpenOverlay shows the preview of the current image.
func (e *Engine) OpenOverlay() (State, error) {
	if !e.opts.Preview {
		return e.State(), newError(ErrCodePreviewDisabled, "preview is not enabled for this carousel")
	}
	return e.mutate(func() bool {
		if e.overlay {
			return false
		}
		e.overlay = true
		return true
	}), nil
}

// CloseOverlay hides the preview. Closing a closed overlay is a no-op.
func (e *Engine) CloseOverlay() State {
	return e.mutate(func() bool {
		if !e.overlay {
			return false
		}
		e.overlay = false
		return true
	})
}

// State returns the current snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Images returns a copy of the image sequence.
func (e *Engine) Images() []string {
	return append([]string(nil), e.images...)
}

// Options returns the options the engine was created with.
func (e *Engine) Options() Options { return e.opts }

// Subscribe registers fn to receive every state change. Listeners run on the
// goroutine that caused the change, after the engine lock is released.
func (e *Engine) Subscribe(fn func(State)) (cancel func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Dispose retires the engine. Every later mutation is ignored.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	e.listeners = nil
	close(e.done)
}

// Done is closed once the engine is disposed.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Disposed reports whether Dispose has been called.
func (e *Engine) Disposed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disposed
}

// mutate applies step under the lock and notifies listeners when it reports
// a change.
func (e *Engine) mutate(step func() bool) State {
	e.mu.Lock()
	if e.disposed || !step() {
		s := e.snapshot()
		e.mu.Unlock()
		return s
	}
	e.seq++
	s := e.snapshot()
	listeners := make([]func(State), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return s
}

func (e *Engine) snapshot() State {
	return State{
		Seq:            e.seq,
		Index:          e.index,
		Len:            len(e.images),
		Image:          e.images[e.index],
		OverlayVisible: e.overlay,
		Preview:        e.opts.Preview,
	}
}
