package carousel

import "sync"

// Binding ties an engine to the lifetime of the view that shows it. It owns
// the auto-advance schedule, if any.
type Binding struct {
	engine *Engine
	stop   func()
	once   sync.Once
}

// Bind starts auto-advance on clock when the engine's options ask for it.
// The caller must call Dispose when the view unmounts.
func Bind(engine *Engine, clock Clock) *Binding {
	b := &Binding{engine: engine, stop: func() {}}
	if period := engine.Options().AutoAdvance; period > 0 {
		b.stop = clock.Every(period, func() { engine.Tick() })
	}
	return b
}

// Engine returns the bound engine.
func (b *Binding) Engine() *Engine { return b.engine }

// Dispose cancels the schedule, then disposes the engine. A tick already in
// flight when Dispose runs is dropped by the engine.
func (b *Binding) Dispose() {
	b.once.Do(func() {
		b.stop()
		b.engine.Dispose()
	})
}
