// Package audio drives a pull-model output stream from a per-sample producer.
package audio

import (
	"errors"
	"io"
)

// Errors returned while opening the default output. All of them are terminal.
var (
	ErrNoDevice          = errors.New("no default output device")
	ErrNoDefaultConfig   = errors.New("no default output config")
	ErrUnsupportedConfig = errors.New("unsupported output config")
)

// MinBufferFrames is the smallest buffer requested from a device that exposes
// a configurable buffer range.
const MinBufferFrames = 512

// Device describes the default configuration of an output device.
type Device struct {
	Name            string
	SampleRate      int
	Channels        int
	MinBufferFrames int
	MaxBufferFrames int // 0 when the buffer size is not configurable
}

// Configurable reports whether the device exposes a buffer size range.
func (d Device) Configurable() bool {
	return d.MaxBufferFrames > 0
}

// Config is the stream configuration requested from a backend.
type Config struct {
	SampleRate   int
	Channels     int
	BufferFrames int     // 0 selects the device default
	Volume       float64 // 0.0 silent, 1.0 normal
}

// Backend opens pull streams on an output device.
type Backend interface {
	// DefaultOutput reports the default output device configuration.
	DefaultOutput() (Device, error)

	// Open builds a stream that reads interleaved float32 little-endian
	// frames from src. The stream does not pull until Play is called.
	Open(cfg Config, src io.Reader) (Stream, error)
}

// Stream is an open output stream.
type Stream interface {
	Play() error
	// Err returns the first error the stream hit while playing, or nil.
	Err() error
	Close() error
}

// BufferFrames returns the buffer size to request from dev: the larger of
// the device minimum and MinBufferFrames when the device has a range, or 0
// to keep the device default.
func BufferFrames(dev Device) int {
	if !dev.Configurable() {
		return 0
	}
	return max(dev.MinBufferFrames, MinBufferFrames)
}
