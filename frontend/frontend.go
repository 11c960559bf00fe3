package frontend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/djrideout/basic-emu-frontend/api"
	"github.com/djrideout/basic-emu-frontend/audio"
	"github.com/djrideout/basic-emu-frontend/keymap"
)

// Options configures a Frontend.
type Options struct {
	// Backend plays the audio stream. Nil selects the oto backend.
	Backend  audio.Backend
	Observer KeyObserver
	ExitKeys []ebiten.Key
	// MaxStepsPerLock bounds the AudioLocked step loop per lock hold.
	// 0 selects DefaultMaxStepsPerLock; a negative value removes the bound.
	MaxStepsPerLock int
	// Volume scales the output, 1.0 being unchanged. 0 selects 1.0; use
	// Muted for silence.
	Volume float64
	Muted  bool
}

// Frontend is one session: a core shared between an audio engine and a
// display loop.
type Frontend struct {
	shared   *SharedCore
	producer *Producer
	engine   *audio.Engine
	loop     *Loop
	mode     emucore.SyncMode
}

// New builds a session around core. The audio stream is opened and the core
// is told the output sample period and channel count, but nothing plays
// until Start.
func New(core emucore.Core, keys keymap.Keymap, mode emucore.SyncMode, opts Options) (*Frontend, error) {
	backend := opts.Backend
	if backend == nil {
		backend = audio.NewOtoBackend()
	}
	maxSteps := opts.MaxStepsPerLock
	if maxSteps == 0 {
		maxSteps = DefaultMaxStepsPerLock
	}

	volume := opts.Volume
	if volume == 0 {
		volume = 1
	}
	if opts.Muted {
		volume = 0
	}

	shared := NewSharedCore(core)
	producer := NewProducer(shared, mode, maxSteps)
	engine, err := audio.NewEngine(backend, producer.Next, audio.Options{Volume: volume})
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	shared.Do(func(c emucore.Core) {
		c.SetSecondsPerSample(1 / float32(engine.SampleRate()))
		c.SetOutputChannels(engine.Channels())
	})

	loop := NewLoop(shared, keys, mode, LoopOptions{
		Observer: opts.Observer,
		ExitKeys: opts.ExitKeys,
	})

	return &Frontend{
		shared:   shared,
		producer: producer,
		engine:   engine,
		loop:     loop,
		mode:     mode,
	}, nil
}

// Start begins audio playback. From here on the audio context pulls samples
// and, in AudioLocked mode, drives emulation.
func (f *Frontend) Start() error {
	return f.engine.Start()
}

// Close stops the audio stream.
func (f *Frontend) Close() error {
	return f.engine.Close()
}

// AudioErr reports an error the audio stream hit while playing.
func (f *Frontend) AudioErr() error {
	return f.engine.Err()
}

// Loop returns the display loop the host drives.
func (f *Frontend) Loop() *Loop {
	return f.loop
}

// Shared returns the guarded core.
func (f *Frontend) Shared() *SharedCore {
	return f.shared
}

// Mode returns the session's sync mode.
func (f *Frontend) Mode() emucore.SyncMode {
	return f.mode
}

// Audio returns the audio engine.
func (f *Frontend) Audio() *audio.Engine {
	return f.engine
}

// InjectPress forces key down as if it were held on the keyboard.
func (f *Frontend) InjectPress(key ebiten.Key) {
	f.loop.InjectPress(key)
}

// InjectRelease removes a key forced by InjectPress.
func (f *Frontend) InjectRelease(key ebiten.Key) {
	f.loop.InjectRelease(key)
}
