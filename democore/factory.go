package democore

import emucore "github.com/djrideout/basic-emu-frontend/api"

// DefaultKeys is the keyboard layout for the 16 logical keys, a 4x4 block
// on the left of a QWERTY keyboard.
var DefaultKeys = []string{
	"1", "2", "3", "4",
	"Q", "W", "E", "R",
	"A", "S", "D", "F",
	"Z", "X", "C", "V",
}

// Factory implements emucore.CoreFactory.
type Factory struct{}

var _ emucore.CoreFactory = Factory{}

func (Factory) SystemInfo() emucore.SystemInfo {
	keys := make([]string, len(DefaultKeys))
	copy(keys, DefaultKeys)
	return emucore.SystemInfo{
		Name:       "chippy",
		Title:      "chippy",
		Extensions: []string{".ch8", ".bin"},
		Keys:       keys,
		Scale:      5,
	}
}

func (Factory) CreateCore(image []byte) (emucore.Core, error) {
	c, err := New(image)
	if err != nil {
		return nil, err
	}
	return c, nil
}
