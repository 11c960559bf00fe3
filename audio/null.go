package audio

import (
	"io"
	"sync"
	"time"
)

// NullBackend discards audio. It pulls from the source at the rate a real
// device would, so the producer keeps pacing emulation when there is no
// sound output.
type NullBackend struct {
	SampleRate int
	Channels   int
}

// NewNullBackend returns a null backend with the same defaults as oto.
func NewNullBackend() *NullBackend {
	return &NullBackend{SampleRate: DefaultSampleRate, Channels: DefaultChannels}
}

func (b *NullBackend) DefaultOutput() (Device, error) {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return Device{}, ErrNoDefaultConfig
	}
	return Device{
		Name:            "null",
		SampleRate:      b.SampleRate,
		Channels:        b.Channels,
		MinBufferFrames: 0,
		MaxBufferFrames: b.SampleRate,
	}, nil
}

func (b *NullBackend) Open(cfg Config, src io.Reader) (Stream, error) {
	frames := cfg.BufferFrames
	if frames <= 0 {
		frames = MinBufferFrames
	}
	period := time.Duration(frames) * time.Second / time.Duration(cfg.SampleRate)
	return &nullStream{
		src:    src,
		buf:    make([]byte, frames*cfg.Channels*bytesPerSample),
		period: period,
		done:   make(chan struct{}),
	}, nil
}

type nullStream struct {
	src    io.Reader
	buf    []byte
	period time.Duration

	mu      sync.Mutex
	err     error
	started bool
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func (s *nullStream) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return nil
	}
	s.started = true
	s.wg.Add(1)
	go s.pump()
	return nil
}

func (s *nullStream) pump() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if _, err := s.src.Read(s.buf); err != nil {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
				return
			}
		}
	}
}

func (s *nullStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the pump and waits for an in-flight read to finish.
func (s *nullStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}
