package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/carousel"
	"github.com/Zachkp/folio/internal/content"
)

// ErrTooManyMounts is returned by Mount when the registry is full.
var ErrTooManyMounts = errors.New("too many live carousels")

// Profiles a carousel can be mounted with.
const (
	ProfileCard   = "card"
	ProfileDetail = "detail"
)

// Mount is one carousel shown in one browser view.
type Mount struct {
	ID      string
	Project content.Project
	Profile string

	binding  *carousel.Binding
	lastSeen time.Time // guarded by Mounts.mu
}

func (m *Mount) Engine() *carousel.Engine { return m.binding.Engine() }

// Stats summarises the registry.
type Stats struct {
	Active    int            `json:"active"`
	Mounted   uint64         `json:"mounted"`
	Disposed  uint64         `json:"disposed"`
	ByProfile map[string]int `json:"by_profile"`
}

// Mounts tracks live carousels. Every mount owns a binding that must be
// disposed exactly once: on explicit unmount, idle expiry, or shutdown.
type Mounts struct {
	clock  carousel.Clock
	ttl    time.Duration
	max    int // 0 is unlimited
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	items    map[string]*Mount
	mounted  uint64
	disposed uint64
}

func NewMounts(clock carousel.Clock, ttl time.Duration, limit int, logger *log.Logger) *Mounts {
	return &Mounts{
		clock:  clock,
		ttl:    ttl,
		max:    limit,
		logger: logger,
		now:    time.Now,
		items:  make(map[string]*Mount),
	}
}

// Mount creates and binds a carousel over the project's images.
func (ms *Mounts) Mount(p content.Project, profile string, opts carousel.Options) (*Mount, error) {
	engine, err := carousel.New(p.Images, opts)
	if err != nil {
		return nil, err
	}

	ms.mu.Lock()
	if ms.max > 0 && len(ms.items) >= ms.max {
		ms.mu.Unlock()
		engine.Dispose()
		return nil, ErrTooManyMounts
	}
	m := &Mount{
		ID:       uuid.NewString(),
		Project:  p,
		Profile:  profile,
		binding:  carousel.Bind(engine, ms.clock),
		lastSeen: ms.now(),
	}
	ms.items[m.ID] = m
	ms.mounted++
	ms.mu.Unlock()

	ms.logger.Debug("carousel mounted", "id", m.ID, "project", p.UID, "profile", profile, "auto_advance", opts.AutoAdvance)
	return m, nil
}

// Get returns a live mount and marks it as seen.
func (ms *Mounts) Get(id string) (*Mount, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	m, ok := ms.items[id]
	if ok {
		m.lastSeen = ms.now()
	}
	return m, ok
}

// Touch marks a mount as seen without returning it.
func (ms *Mounts) Touch(id string) {
	ms.Get(id)
}

// Unmount disposes a mount. It reports false if id was not live.
func (ms *Mounts) Unmount(id string) bool {
	ms.mu.Lock()
	m, ok := ms.items[id]
	if ok {
		delete(ms.items, id)
		ms.disposed++
	}
	ms.mu.Unlock()

	if !ok {
		return false
	}
	m.binding.Dispose()
	ms.logger.Debug("carousel unmounted", "id", id, "project", m.Project.UID)
	return true
}

// Sweep disposes mounts idle for longer than the TTL and returns how many.
func (ms *Mounts) Sweep() int {
	cutoff := ms.now().Add(-ms.ttl)

	ms.mu.Lock()
	var expired []*Mount
	for id, m := range ms.items {
		if m.lastSeen.Before(cutoff) {
			expired = append(expired, m)
			delete(ms.items, id)
		}
	}
	ms.disposed += uint64(len(expired))
	ms.mu.Unlock()

	for _, m := range expired {
		m.binding.Dispose()
	}
	if len(expired) > 0 {
		ms.logger.Info("swept idle carousels", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (ms *Mounts) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ms.Sweep()
		}
	}
}

// Close disposes every live mount.
func (ms *Mounts) Close() {
	ms.mu.Lock()
	all := make([]*Mount, 0, len(ms.items))
	for id, m := range ms.items {
		all = append(all, m)
		delete(ms.items, id)
	}
	ms.disposed += uint64(len(all))
	ms.mu.Unlock()

	for _, m := range all {
		m.binding.Dispose()
	}
}

func (ms *Mounts) Stats() Stats {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	s := Stats{
		Active:    len(ms.items),
		Mounted:   ms.mounted,
		Disposed:  ms.disposed,
		ByProfile: make(map[string]int),
	}
	for _, m := range ms.items {
		s.ByProfile[m.Profile]++
	}
	return s
}
