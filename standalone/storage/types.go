package storage

// Config is the persisted user configuration (config.json).
type Config struct {
	Version  int           `json:"version"`
	SyncMode string        `json:"syncMode"` // "audio" or "frame"
	Audio    AudioConfig   `json:"audio"`
	Window   WindowConfig  `json:"window"`
	Input    InputConfig   `json:"input"`
	Overlay  OverlayConfig `json:"overlay"`
}

// AudioConfig contains audio output settings.
type AudioConfig struct {
	Volume  float64 `json:"volume"` // 0.0 to 2.0
	Muted   bool    `json:"muted"`
	Backend string  `json:"backend"` // "oto" or "null"
	// MaxStepsPerLock bounds instructions per core lock hold in audio sync
	// mode. -1 removes the bound.
	MaxStepsPerLock int `json:"maxStepsPerLock"`
}

// WindowConfig contains window settings.
type WindowConfig struct {
	Scale      int  `json:"scale"` // 0 uses the core's default scale
	Fullscreen bool `json:"fullscreen"`
}

// InputConfig contains keyboard mapping settings.
type InputConfig struct {
	// Keys maps logical key indices to key names. Empty uses the core's
	// default layout.
	Keys    []string `json:"keys,omitempty"`
	ExitKey string   `json:"exitKey"` // "" disables the exit key
}

// OverlayConfig contains on-screen overlay settings.
type OverlayConfig struct {
	Keypad bool `json:"keypad"`
}

// Audio backend names.
const (
	BackendOto  = "oto"
	BackendNull = "null"
)

// Window scale limits.
const (
	MinScale = 1
	MaxScale = 16
)

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		SyncMode: "audio",
		Audio: AudioConfig{
			Volume:          1.0,
			Backend:         BackendOto,
			MaxStepsPerLock: 4096,
		},
		Input: InputConfig{
			ExitKey: "Escape",
		},
	}
}
