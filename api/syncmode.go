package emucore

import (
	"fmt"
	"strings"
)

// SyncMode selects which execution context advances emulation. It is fixed
// for the lifetime of a session.
type SyncMode int

const (
	// AudioLocked runs instructions from the audio callback whenever the
	// device needs another sample. Higher buffer sizes give smoother audio
	// and a rougher frame rate.
	AudioLocked SyncMode = iota

	// FrameLocked runs one emulated frame per displayed frame. Audio output
	// is silent.
	FrameLocked
)

// String returns the config name of the mode.
func (m SyncMode) String() string {
	switch m {
	case AudioLocked:
		return "audio"
	case FrameLocked:
		return "frame"
	default:
		return "unknown"
	}
}

// ParseSyncMode converts a config or flag value to a SyncMode.
// "vsync" is accepted as an alias for "frame".
func ParseSyncMode(s string) (SyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "audio", "audiocallback":
		return AudioLocked, nil
	case "frame", "vsync":
		return FrameLocked, nil
	default:
		return 0, fmt.Errorf("unknown sync mode %q: use audio or frame", s)
	}
}
