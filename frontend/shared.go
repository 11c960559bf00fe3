// Package frontend arbitrates access to an emulator core between the audio
// context and the display loop.
package frontend

import (
	"sync"

	emucore "github.com/djrideout/basic-emu-frontend/api"
)

// SharedCore guards one core with one mutex. Every read or write of the
// core, from any goroutine, goes through Lock or Do.
type SharedCore struct {
	mu   sync.Mutex
	core emucore.Core
}

// NewSharedCore takes ownership of core.
func NewSharedCore(core emucore.Core) *SharedCore {
	return &SharedCore{core: core}
}

// Lock blocks until the core is free and returns it. The caller must not
// keep the returned value past Unlock.
func (s *SharedCore) Lock() emucore.Core {
	s.mu.Lock()
	return s.core
}

// Unlock releases the core.
func (s *SharedCore) Unlock() {
	s.mu.Unlock()
}

// Do runs fn with exclusive access to the core.
func (s *SharedCore) Do(fn func(core emucore.Core)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.core)
}
