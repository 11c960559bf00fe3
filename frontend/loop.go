package frontend

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/djrideout/basic-emu-frontend/api"
	"github.com/djrideout/basic-emu-frontend/keymap"
)

// ErrClosed is returned by HandleInput when the user asked to exit.
var ErrClosed = errors.New("display closed")

// Surface is the host side of the display: it shows frames and tracks the
// window size.
type Surface interface {
	// Present shows an RGBA frame of the core's width and height.
	Present(frame []byte) error
	// Resize is called when the window's drawable size changes.
	Resize(width, height int) error
	// RequestRedraw asks the host for another redraw tick.
	RequestRedraw()
}

// InputState is the host's view of user input for one input tick.
type InputState interface {
	CloseRequested() bool
	JustPressed(key ebiten.Key) bool
	Held(key ebiten.Key) bool
	// Resized reports a new drawable size if it changed since the last tick.
	Resized() (width, height int, ok bool)
}

// KeyObserver is notified when a logical key changes state in the core.
type KeyObserver interface {
	OnKeyPressed(index int)
	OnKeyReleased(index int)
}

// LoopOptions configures a Loop.
type LoopOptions struct {
	Observer KeyObserver
	// ExitKeys end the loop when pressed. Nil means no exit key.
	ExitKeys []ebiten.Key
}

// Loop is the display and input side of a session. It is driven by the host
// from a single goroutine; only InjectPress and InjectRelease may be called
// from elsewhere.
type Loop struct {
	shared    *SharedCore
	keys      keymap.Keymap
	mode      emucore.SyncMode
	overrides *keymap.Overrides
	observer  KeyObserver
	exitKeys  []ebiten.Key

	width, height int
	frame         []byte

	// Scratch slices reused across ticks
	pressed  []int
	released []int
}

// NewLoop creates a loop over shared. The frame buffer is sized from the
// core's dimensions, which are fixed for the session.
func NewLoop(shared *SharedCore, keys keymap.Keymap, mode emucore.SyncMode, opts LoopOptions) *Loop {
	l := &Loop{
		shared:    shared,
		keys:      keys,
		mode:      mode,
		overrides: keymap.NewOverrides(),
		observer:  opts.Observer,
		exitKeys:  append([]ebiten.Key(nil), opts.ExitKeys...),
	}
	shared.Do(func(core emucore.Core) {
		l.width = core.Width()
		l.height = core.Height()
	})
	l.frame = make([]byte, l.width*l.height*4)
	return l
}

// Size returns the core's display dimensions.
func (l *Loop) Size() (width, height int) {
	return l.width, l.height
}

// Redraw renders the core into the frame buffer and presents it. The lock is
// released before presenting.
func (l *Loop) Redraw(surface Surface) error {
	core := l.shared.Lock()
	core.Render(l.frame)
	l.shared.Unlock()

	if err := surface.Present(l.frame); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// HandleInput applies one batch of input to the core. Every logical key is
// pressed or released from the merged override and keyboard state. In
// FrameLocked mode one frame of emulation runs afterwards. Key transitions
// are reported to the observer once the core lock is released.
func (l *Loop) HandleInput(in InputState, surface Surface) error {
	if in.CloseRequested() {
		return ErrClosed
	}
	for _, k := range l.exitKeys {
		if in.JustPressed(k) {
			return ErrClosed
		}
	}
	if w, h, ok := in.Resized(); ok {
		if err := surface.Resize(w, h); err != nil {
			return fmt.Errorf("resize surface to %dx%d: %w", w, h, err)
		}
	}

	forced := l.overrides.Snapshot()
	l.pressed = l.pressed[:0]
	l.released = l.released[:0]

	core := l.shared.Lock()
	for i := range l.keys.Len() {
		key := l.keys.At(i)
		before := core.KeyPressed(i)
		_, isForced := forced[key]
		if isForced || in.JustPressed(key) || in.Held(key) {
			core.PressKey(i)
		} else {
			core.ReleaseKey(i)
		}
		after := core.KeyPressed(i)
		switch {
		case !before && after:
			l.pressed = append(l.pressed, i)
		case before && !after:
			l.released = append(l.released, i)
		}
	}
	if l.mode == emucore.FrameLocked {
		core.StepFrame()
	}
	l.shared.Unlock()

	if l.observer != nil {
		for _, i := range l.pressed {
			l.observer.OnKeyPressed(i)
		}
		for _, i := range l.released {
			l.observer.OnKeyReleased(i)
		}
	}
	surface.RequestRedraw()
	return nil
}

// InjectPress forces key down from the next input tick until InjectRelease.
func (l *Loop) InjectPress(key ebiten.Key) {
	l.overrides.Assert(key)
}

// InjectRelease removes a forced key.
func (l *Loop) InjectRelease(key ebiten.Key) {
	l.overrides.Clear(key)
}
