package emucore

// SystemInfo describes a core for window and input configuration.
type SystemInfo struct {
	Name       string   // Short identifier, also used as the data directory name
	Title      string   // Window title
	Extensions []string // Program image extensions, e.g. ".ch8"
	Keys       []string // Default physical key name per logical key index
	Scale      int      // Default integer window scale
}

// KeyCount returns the number of logical keys the core understands.
func (s SystemInfo) KeyCount() int {
	return len(s.Keys)
}

// CoreFactory creates cores from program images and provides system metadata.
type CoreFactory interface {
	// SystemInfo returns system metadata for UI configuration.
	SystemInfo() SystemInfo

	// CreateCore creates a new core with the given program image loaded.
	CreateCore(image []byte) (Core, error)
}
