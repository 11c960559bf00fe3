// Package keymap maps a core's logical key indices to physical keyboard keys
// and tracks keys forced down by the host.
package keymap

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownKey is returned when a key name is not in the name table.
var ErrUnknownKey = errors.New("unknown key name")

// Keymap is an ordered, immutable list of physical keys. The position of a
// key is the logical key index the core uses for PressKey and ReleaseKey.
type Keymap struct {
	keys []ebiten.Key
}

// New creates a keymap from physical keys in logical index order.
func New(keys ...ebiten.Key) Keymap {
	k := make([]ebiten.Key, len(keys))
	copy(k, keys)
	return Keymap{keys: k}
}

// FromNames creates a keymap from key names such as "Q" or "ArrowUp".
// The first unknown name fails the whole map.
func FromNames(names []string) (Keymap, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for i, name := range names {
		k, ok := KeyFromName(name)
		if !ok {
			return Keymap{}, fmt.Errorf("key %d: %w: %q", i, ErrUnknownKey, name)
		}
		keys = append(keys, k)
	}
	return Keymap{keys: keys}, nil
}

// Len returns the number of logical keys.
func (m Keymap) Len() int {
	return len(m.keys)
}

// At returns the physical key for a logical index.
func (m Keymap) At(index int) ebiten.Key {
	return m.keys[index]
}

// Keys returns a copy of the physical keys in logical order.
func (m Keymap) Keys() []ebiten.Key {
	k := make([]ebiten.Key, len(m.keys))
	copy(k, m.keys)
	return k
}

// Names returns the name of every key in logical order.
func (m Keymap) Names() []string {
	names := make([]string, len(m.keys))
	for i, k := range m.keys {
		if name, ok := KeyToName(k); ok {
			names[i] = name
		} else {
			names[i] = k.String()
		}
	}
	return names
}
