package standalone

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/djrideout/basic-emu-frontend/keymap"
)

// Hotkeys handled by the host. They cannot be bound to core keys.
const (
	keyFullscreen = ebiten.KeyF11
	keyScreenshot = ebiten.KeyF12
	keyKeypad     = ebiten.KeyTab
)

// reservedKeys are keyboard keys used by the host for non-emulation
// functions. These cannot be assigned as core key bindings.
var reservedKeys = map[ebiten.Key]string{
	keyFullscreen: "fullscreen",
	keyScreenshot: "screenshot",
	keyKeypad:     "keypad overlay",
}

// ErrKeymapSize is returned when a key layout does not cover exactly the
// keys a core understands.
var ErrKeymapSize = errors.New("key layout size does not match core")

// IsReservedKey returns true if the key is reserved by the host.
func IsReservedKey(k ebiten.Key) bool {
	_, ok := reservedKeys[k]
	return ok
}

// buildKeymap resolves key names into a keymap for a core with keyCount
// logical keys. The exit key, if any, is also rejected as a binding.
func buildKeymap(names []string, keyCount int, exitKey string) (keymap.Keymap, []ebiten.Key, error) {
	if len(names) != keyCount {
		return keymap.Keymap{}, nil, fmt.Errorf("%w: %d keys for %d inputs", ErrKeymapSize, len(names), keyCount)
	}
	km, err := keymap.FromNames(names)
	if err != nil {
		return keymap.Keymap{}, nil, err
	}

	var exitKeys []ebiten.Key
	if exitKey != "" {
		k, ok := keymap.KeyFromName(exitKey)
		if !ok {
			return keymap.Keymap{}, nil, fmt.Errorf("exit key: %w: %q", keymap.ErrUnknownKey, exitKey)
		}
		if use, reserved := reservedKeys[k]; reserved {
			return keymap.Keymap{}, nil, fmt.Errorf("exit key %s is reserved for %s", exitKey, use)
		}
		exitKeys = append(exitKeys, k)
	}

	seen := make(map[ebiten.Key]int, km.Len())
	for i, k := range km.Keys() {
		name := names[i]
		if use, reserved := reservedKeys[k]; reserved {
			return keymap.Keymap{}, nil, fmt.Errorf("key %d: %s is reserved for %s", i, name, use)
		}
		if len(exitKeys) > 0 && k == exitKeys[0] {
			return keymap.Keymap{}, nil, fmt.Errorf("key %d: %s is the exit key", i, name)
		}
		if prev, dup := seen[k]; dup {
			return keymap.Keymap{}, nil, fmt.Errorf("key %d: %s is already bound to key %d", i, name, prev)
		}
		seen[k] = i
	}
	return km, exitKeys, nil
}
