package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Oto output defaults. oto does not enumerate devices, so the backend
// reports these as the default output.
const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
)

// oto context singleton. oto allows one context per process, so the first
// stream fixes the sample rate and channel count.
var (
	otoCtx      *oto.Context
	otoCtxCfg   Config
	otoInitOnce sync.Once
	otoInitErr  error
)

func ensureOtoContext(cfg Config) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatFloat32LE,
		}
		if cfg.BufferFrames > 0 {
			op.BufferSize = time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate)
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-ready
		otoCtxCfg = cfg
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if otoCtxCfg.SampleRate != cfg.SampleRate || otoCtxCfg.Channels != cfg.Channels {
		return nil, fmt.Errorf("%d Hz, %d channels (context is %d Hz, %d channels): %w",
			cfg.SampleRate, cfg.Channels, otoCtxCfg.SampleRate, otoCtxCfg.Channels, ErrUnsupportedConfig)
	}
	return otoCtx, nil
}

// OtoBackend plays through the system output using oto.
type OtoBackend struct {
	SampleRate int
	Channels   int
}

// NewOtoBackend returns an oto backend with the default 48 kHz stereo output.
func NewOtoBackend() *OtoBackend {
	return &OtoBackend{SampleRate: DefaultSampleRate, Channels: DefaultChannels}
}

// DefaultOutput reports the output oto will open. The player buffer is
// adjustable up to half a second, matching oto's own default.
func (b *OtoBackend) DefaultOutput() (Device, error) {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return Device{}, ErrNoDefaultConfig
	}
	return Device{
		Name:            "oto",
		SampleRate:      b.SampleRate,
		Channels:        b.Channels,
		MinBufferFrames: 0,
		MaxBufferFrames: b.SampleRate / 2,
	}, nil
}

// Open creates an oto player reading from src.
func (b *OtoBackend) Open(cfg Config, src io.Reader) (Stream, error) {
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("%d channels: %w", cfg.Channels, ErrUnsupportedConfig)
	}
	ctx, err := ensureOtoContext(cfg)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	player := ctx.NewPlayer(src)
	if cfg.BufferFrames > 0 {
		player.SetBufferSize(cfg.BufferFrames * cfg.Channels * bytesPerSample)
	}
	// Set volume before Play to avoid a pop when muted
	player.SetVolume(clampVolume(cfg.Volume))
	return &otoStream{player: player, ctx: ctx}, nil
}

type otoStream struct {
	player *oto.Player
	ctx    *oto.Context
}

func (s *otoStream) Play() error {
	s.player.Play()
	return s.Err()
}

func (s *otoStream) Err() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	return s.player.Err()
}

func (s *otoStream) Close() error {
	return s.player.Close()
}

// clampVolume limits volume to [0.0, 2.0].
func clampVolume(vol float64) float64 {
	if vol < 0 {
		return 0
	} else if vol > 2.0 {
		return 2.0
	}
	return vol
}
