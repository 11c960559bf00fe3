package emucore

// Core is the capability set a frontend needs from an emulation core.
// The frontend never looks inside the core; every call below is expected to
// be total and to return promptly. Implementations need not be safe for
// concurrent use: the frontend serializes all access.
type Core interface {
	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// PendingSamples returns the number of audio samples queued by the core
	// and not yet consumed with PopSample.
	PendingSamples() int

	// KeyPressed reports whether the logical key at index is held down.
	KeyPressed(index int) bool

	// Render writes the current frame as RGBA pixels into frame, which is
	// Width()*Height()*4 bytes long.
	Render(frame []byte)

	// SetSecondsPerSample tells the core how much emulated time one output
	// sample covers.
	SetSecondsPerSample(seconds float32)

	// SetOutputChannels tells the core how many output channels the audio
	// device plays.
	SetOutputChannels(count int)

	// PressKey marks the logical key at index as held.
	PressKey(index int)

	// ReleaseKey marks the logical key at index as released.
	ReleaseKey(index int)

	// StepInstruction executes a single instruction.
	StepInstruction()

	// StepFrame executes one frame worth of emulation.
	StepFrame()

	// PopSample removes and returns the oldest queued sample.
	PopSample() float32
}
