// Package animation describes the scroll-triggered entry transitions used by
// the pages. The presets are declarative; the browser script reads them from
// data attributes and nothing on the server depends on them running.
package animation

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"
)

// Frame is one end of a tween.
type Frame struct {
	Opacity float64
	Y       float64
	Scale   float64
}

// Trigger controls when a tween plays relative to the viewport.
type Trigger struct {
	Start         string // e.g. "top 80%"
	End           string
	ToggleActions string // enter, leave, enter-back, leave-back
	Once          bool
}

type Preset struct {
	Name     string
	From     Frame
	To       Frame
	Duration float64 // seconds
	Ease     string
	Trigger  Trigger
}

// Registry holds named presets.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register adds or replaces a preset.
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("animation preset needs a name")
	}
	if p.Duration <= 0 {
		return fmt.Errorf("animation preset %q: duration must be positive", p.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
	return nil
}

func (r *Registry) Get(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Names lists registered presets in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attrs renders a preset as data-animate-* attributes. Unknown names render
// nothing so a missing preset only loses the transition.
func (r *Registry) Attrs(name string) template.HTMLAttr {
	p, ok := r.Get(name)
	if !ok {
		return ""
	}
	attrs := []string{
		attr("data-animate", p.Name),
		attr("data-animate-from", frame(p.From)),
		attr("data-animate-to", frame(p.To)),
		attr("data-animate-duration", fmt.Sprintf("%g", p.Duration)),
		attr("data-animate-ease", p.Ease),
		attr("data-animate-start", p.Trigger.Start),
	}
	if p.Trigger.End != "" {
		attrs = append(attrs, attr("data-animate-end", p.Trigger.End))
	}
	if p.Trigger.ToggleActions != "" {
		attrs = append(attrs, attr("data-animate-toggle", p.Trigger.ToggleActions))
	}
	if p.Trigger.Once {
		attrs = append(attrs, `data-animate-once`)
	}
	// Values are built from registered presets only, never from requests.
	return template.HTMLAttr(strings.Join(attrs, " "))
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, template.HTMLEscapeString(value))
}

func frame(f Frame) string {
	return fmt.Sprintf("opacity:%g;y:%g;scale:%g", f.Opacity, f.Y, f.Scale)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Init registers the built-in presets on the shared registry and returns it.
// Only the first call does any work.
func Init() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, p := range builtins() {
			if err := defaultRegistry.Register(p); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

func builtins() []Preset {
	hold := Trigger{Start: "top 80%", ToggleActions: "play none none reverse", Once: true}
	replay := Trigger{Start: "top 80%", ToggleActions: "play reverse play reverse"}

	return []Preset{
		{Name: "hero-title", From: Frame{Opacity: 0, Y: 50, Scale: 1}, To: Frame{Opacity: 1, Scale: 1}, Duration: 3, Ease: "elastic.out", Trigger: hold},
		{Name: "hero-text", From: Frame{Opacity: 0, Y: 30, Scale: 1}, To: Frame{Opacity: 1, Scale: 1}, Duration: 1, Ease: "power3.out", Trigger: hold},
		{Name: "hero-icons", From: Frame{Opacity: 0, Scale: 0.8}, To: Frame{Opacity: 1, Scale: 1}, Duration: 1.2, Ease: "power3.out", Trigger: hold},
		{Name: "section-title", From: Frame{Opacity: 0, Y: 50, Scale: 1}, To: Frame{Opacity: 1, Scale: 1}, Duration: 3, Ease: "elastic.out", Trigger: replay},
		{Name: "section-fade", From: Frame{Opacity: 0, Y: 30, Scale: 1}, To: Frame{Opacity: 1, Scale: 1}, Duration: 1.5, Ease: "power3.out", Trigger: replay},
		{Name: "section-scale", From: Frame{Opacity: 0, Scale: 0.8}, To: Frame{Opacity: 1, Scale: 1}, Duration: 1.5, Ease: "power3.out", Trigger: replay},
		{
			Name:     "timeline-entry",
			From:     Frame{Opacity: 0, Y: 50, Scale: 1},
			To:       Frame{Opacity: 1, Scale: 1},
			Duration: 0.8,
			Ease:     "power3.out",
			Trigger:  Trigger{Start: "top 80%", End: "bottom 40%", ToggleActions: "play none none reverse"},
		},
	}
}
