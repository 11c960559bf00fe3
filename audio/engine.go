package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
)

const bytesPerSample = 4

// SampleFunc produces the next mono sample. It is called from the audio
// context once per output frame.
type SampleFunc func() float32

// Options configures an Engine.
type Options struct {
	Volume float64
}

// Engine owns an output stream and fills it from a SampleFunc.
type Engine struct {
	backend Backend
	produce SampleFunc
	cfg     Config
	device  Device

	mu     sync.Mutex
	stream Stream
	closed bool
}

// NewEngine queries the backend's default output and opens a stream on it.
// The stream is built but not playing until Start.
func NewEngine(backend Backend, produce SampleFunc, opts Options) (*Engine, error) {
	dev, err := backend.DefaultOutput()
	if err != nil {
		return nil, fmt.Errorf("query default output: %w", err)
	}
	if dev.SampleRate <= 0 || dev.Channels <= 0 {
		return nil, fmt.Errorf("device %q reports %d Hz, %d channels: %w",
			dev.Name, dev.SampleRate, dev.Channels, ErrNoDefaultConfig)
	}

	e := &Engine{
		backend: backend,
		produce: produce,
		device:  dev,
		cfg: Config{
			SampleRate:   dev.SampleRate,
			Channels:     dev.Channels,
			BufferFrames: BufferFrames(dev),
			Volume:       opts.Volume,
		},
	}

	stream, err := backend.Open(e.cfg, e)
	if err != nil {
		return nil, fmt.Errorf("build output stream: %w", err)
	}
	e.stream = stream
	return e, nil
}

// Read fills p with whole frames. Each frame calls the producer once and
// writes the sample to every channel. Trailing bytes that do not make up a
// full frame are left untouched.
func (e *Engine) Read(p []byte) (int, error) {
	frameSize := e.cfg.Channels * bytesPerSample
	frames := len(p) / frameSize
	off := 0
	for range frames {
		bits := math.Float32bits(e.produce())
		for range e.cfg.Channels {
			binary.LittleEndian.PutUint32(p[off:], bits)
			off += bytesPerSample
		}
	}
	return off, nil
}

// Start begins playback. The producer is called from the stream's own
// goroutine from this point on.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return io.ErrClosedPipe
	}
	if err := e.stream.Play(); err != nil {
		return fmt.Errorf("play output stream: %w", err)
	}
	return nil
}

// Err reports an error raised by the stream after Start.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stream == nil {
		return nil
	}
	return e.stream.Err()
}

// Close stops and releases the stream.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.stream.Close()
}

// SampleRate returns the negotiated sample rate in Hz.
func (e *Engine) SampleRate() int { return e.cfg.SampleRate }

// Channels returns the negotiated channel count.
func (e *Engine) Channels() int { return e.cfg.Channels }

// Config returns the configuration the stream was opened with.
func (e *Engine) Config() Config { return e.cfg }

// Device returns the output device the engine was opened on.
func (e *Engine) Device() Device { return e.device }
