package server

import (
	"sync"
	"time"

	"github.com/abhisek/disha/internal/guidance"
)

// entry is one live session. Its mutex serializes access to the runner.
type entry struct {
	mu       sync.Mutex
	runner   *guidance.Runner
	lastSeen time.Time
}

// registry holds live sessions keyed by id. Sessions idle for longer than
// ttl are dropped by a janitor goroutine; ttl <= 0 keeps them forever.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newRegistry(ttl time.Duration) *registry {
	r := &registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if ttl > 0 {
		go r.janitor(sweepInterval(ttl))
	} else {
		close(r.done)
	}
	return r
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return interval
}

func (r *registry) janitor(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

// sweep removes expired sessions and returns how many were removed.
func (r *registry) sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *registry) add(runner *guidance.Runner) *entry {
	e := &entry{runner: runner, lastSeen: r.now()}
	r.mu.Lock()
	r.entries[runner.ID()] = e
	r.mu.Unlock()
	return e
}

// get returns the session with id if userID owns it, refreshing its idle
// timer.
func (r *registry) get(id, userID string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.runner.UserID() != userID {
		return nil, false
	}
	e.lastSeen = r.now()
	return e, true
}

func (r *registry) remove(id, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.runner.UserID() != userID {
		return false
	}
	delete(r.entries, id)
	return true
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// close stops the janitor and waits for it to exit.
func (r *registry) close() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
