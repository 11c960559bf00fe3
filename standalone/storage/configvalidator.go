package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	emucore "github.com/djrideout/basic-emu-frontend/api"
	"github.com/djrideout/basic-emu-frontend/keymap"
)

// Config keys that carry defaults. Nested keys are dotted paths.
var defaultedKeys = []string{
	"version",
	"syncMode",
	"audio.volume",
	"audio.backend",
	"audio.maxStepsPerLock",
	"input.exitKey",
}

// detectPresentKeys unmarshals JSON bytes to determine which defaulted
// config keys are explicitly present in the file, as dotted paths
// (e.g., "audio.volume").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	sections := make(map[string]map[string]json.RawMessage)
	for _, key := range defaultedKeys {
		section, field, nested := strings.Cut(key, ".")
		if !nested {
			if _, ok := raw[key]; ok {
				present[key] = true
			}
			continue
		}
		obj, seen := sections[section]
		if !seen {
			if sectionRaw, ok := raw[section]; ok {
				json.Unmarshal(sectionRaw, &obj)
			}
			sections[section] = obj
		}
		if _, ok := obj[field]; ok {
			present[key] = true
		}
	}
	return present
}

// ApplyMissingDefaults sets default values for config fields that are absent
// from the JSON file. Only truly missing fields get defaults, preserving
// intentional zero values (e.g., volume=0).
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["syncMode"] {
		config.SyncMode = defaults.SyncMode
	}
	if !presentKeys["audio.volume"] {
		config.Audio.Volume = defaults.Audio.Volume
	}
	if !presentKeys["audio.backend"] {
		config.Audio.Backend = defaults.Audio.Backend
	}
	if !presentKeys["audio.maxStepsPerLock"] {
		config.Audio.MaxStepsPerLock = defaults.Audio.MaxStepsPerLock
	}
	if !presentKeys["input.exitKey"] {
		config.Input.ExitKey = defaults.Input.ExitKey
	}
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
func ValidateConfig(config *Config) []string {
	var errors []string

	if config.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", config.Version))
	}
	if _, err := emucore.ParseSyncMode(config.SyncMode); err != nil {
		errors = append(errors, fmt.Sprintf("syncMode: %q (valid: \"audio\", \"frame\")", config.SyncMode))
	}
	if !validVolume(config.Audio.Volume) {
		errors = append(errors, fmt.Sprintf("audio.volume: %.2f (valid: 0.0-2.0)", config.Audio.Volume))
	}
	if !validBackend(config.Audio.Backend) {
		errors = append(errors, fmt.Sprintf("audio.backend: %q (valid: %q, %q)", config.Audio.Backend, BackendOto, BackendNull))
	}
	if config.Audio.MaxStepsPerLock < -1 || config.Audio.MaxStepsPerLock == 0 {
		errors = append(errors, fmt.Sprintf("audio.maxStepsPerLock: %d (valid: -1 or >= 1)", config.Audio.MaxStepsPerLock))
	}
	if !validScale(config.Window.Scale) {
		errors = append(errors, fmt.Sprintf("window.scale: %d (valid: 0 or %d-%d)", config.Window.Scale, MinScale, MaxScale))
	}
	for i, name := range config.Input.Keys {
		if _, ok := keymap.KeyFromName(name); !ok {
			errors = append(errors, fmt.Sprintf("input.keys[%d]: unknown key %q", i, name))
		}
	}
	if config.Input.ExitKey != "" {
		if _, ok := keymap.KeyFromName(config.Input.ExitKey); !ok {
			errors = append(errors, fmt.Sprintf("input.exitKey: unknown key %q", config.Input.ExitKey))
		}
	}

	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Valid fields are preserved. A key list with any unknown name is dropped
// as a whole so the core's default layout applies.
func CorrectConfig(config *Config) *Config {
	defaults := DefaultConfig()

	if config.Version != 1 {
		config.Version = defaults.Version
	}
	if _, err := emucore.ParseSyncMode(config.SyncMode); err != nil {
		config.SyncMode = defaults.SyncMode
	}
	if !validVolume(config.Audio.Volume) {
		config.Audio.Volume = defaults.Audio.Volume
	}
	if !validBackend(config.Audio.Backend) {
		config.Audio.Backend = defaults.Audio.Backend
	}
	if config.Audio.MaxStepsPerLock < -1 || config.Audio.MaxStepsPerLock == 0 {
		config.Audio.MaxStepsPerLock = defaults.Audio.MaxStepsPerLock
	}
	if !validScale(config.Window.Scale) {
		config.Window.Scale = defaults.Window.Scale
	}
	for _, name := range config.Input.Keys {
		if _, ok := keymap.KeyFromName(name); !ok {
			config.Input.Keys = nil
			break
		}
	}
	if config.Input.ExitKey != "" {
		if _, ok := keymap.KeyFromName(config.Input.ExitKey); !ok {
			config.Input.ExitKey = defaults.Input.ExitKey
		}
	}

	return config
}

func validVolume(v float64) bool {
	return v >= 0 && v <= 2.0
}

func validBackend(name string) bool {
	return name == BackendOto || name == BackendNull
}

func validScale(scale int) bool {
	return scale == 0 || (scale >= MinScale && scale <= MaxScale)
}
