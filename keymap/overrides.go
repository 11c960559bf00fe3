package keymap

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overrides is the set of physical keys the host has forced down. Membership
// wins over polled keyboard state. Assert and Clear may be called from any
// goroutine; concurrent calls for the same key resolve last-write-wins.
type Overrides struct {
	mu   sync.Mutex
	keys map[ebiten.Key]struct{}
}

// NewOverrides creates an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{keys: make(map[ebiten.Key]struct{})}
}

// Assert forces key down until it is cleared.
func (o *Overrides) Assert(key ebiten.Key) {
	o.mu.Lock()
	o.keys[key] = struct{}{}
	o.mu.Unlock()
}

// Clear removes a forced key. Clearing a key that is not asserted is a no-op.
func (o *Overrides) Clear(key ebiten.Key) {
	o.mu.Lock()
	delete(o.keys, key)
	o.mu.Unlock()
}

// Contains reports whether key is currently asserted.
func (o *Overrides) Contains(key ebiten.Key) bool {
	o.mu.Lock()
	_, ok := o.keys[key]
	o.mu.Unlock()
	return ok
}

// Snapshot returns a copy of the asserted keys, safe to read without the lock.
func (o *Overrides) Snapshot() map[ebiten.Key]struct{} {
	o.mu.Lock()
	snap := make(map[ebiten.Key]struct{}, len(o.keys))
	for k := range o.keys {
		snap[k] = struct{}{}
	}
	o.mu.Unlock()
	return snap
}

// Reset clears every asserted key.
func (o *Overrides) Reset() {
	o.mu.Lock()
	clear(o.keys)
	o.mu.Unlock()
}
