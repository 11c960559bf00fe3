// Package democore is a small reference core. It shows a program image as a
// scrolling 1-bit bitmap, lights a keypad indicator for held keys, and plays
// a square-wave tone while any key is down.
package democore

import (
	"errors"
	"fmt"
	"math"

	emucore "github.com/djrideout/basic-emu-frontend/api"
)

const (
	Width    = 64
	Height   = 32
	KeyCount = 16

	// ClockHz is the instruction rate in emulated time.
	ClockHz = 1_000_000
	// FrameRate is the number of StepFrame calls per emulated second.
	FrameRate = 60
	// ToneHz is the frequency of the key tone.
	ToneHz = 440

	// MaxImageSize is the largest program image accepted, in bytes.
	MaxImageSize = Width * Height / 8 * 14

	toneVolume        = 0.2
	defaultSampleRate = 48000
	maxQueuedSamples  = defaultSampleRate
)

// ErrImageTooLarge is returned by New for images over MaxImageSize.
var ErrImageTooLarge = errors.New("program image too large")

var (
	colorOn     = [4]byte{0x9b, 0xf0, 0x6a, 0xff}
	colorOff    = [4]byte{0x0f, 0x14, 0x10, 0xff}
	colorKeyOn  = [4]byte{0xff, 0xc8, 0x3c, 0xff}
	colorKeyOff = [4]byte{0x30, 0x30, 0x30, 0xff}
)

// Core implements emucore.Core.
type Core struct {
	image []byte

	keys     [KeyCount]bool
	cycles   uint64
	pc       int
	channels int

	secondsPerSample float64
	sampleClock      float64 // emulated seconds not yet turned into samples
	phase            float64 // tone phase in cycles, [0, 1)
	samples          []float32
}

var _ emucore.Core = (*Core)(nil)

// New creates a core with image loaded. An empty image is allowed.
func New(image []byte) (*Core, error) {
	if len(image) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(image), MaxImageSize)
	}
	img := make([]byte, len(image))
	copy(img, image)
	return &Core{
		image:            img,
		channels:         1,
		secondsPerSample: 1.0 / defaultSampleRate,
	}, nil
}

func (c *Core) Width() int  { return Width }
func (c *Core) Height() int { return Height }

func (c *Core) PendingSamples() int {
	return len(c.samples)
}

func (c *Core) KeyPressed(index int) bool {
	if index < 0 || index >= KeyCount {
		return false
	}
	return c.keys[index]
}

func (c *Core) PressKey(index int) {
	if index >= 0 && index < KeyCount {
		c.keys[index] = true
	}
}

func (c *Core) ReleaseKey(index int) {
	if index >= 0 && index < KeyCount {
		c.keys[index] = false
	}
}

// SetSecondsPerSample sets the sample period. Non-positive values are
// ignored so the core always makes progress towards a sample.
func (c *Core) SetSecondsPerSample(seconds float32) {
	if seconds > 0 {
		c.secondsPerSample = float64(seconds)
	}
}

// SetOutputChannels records the device channel count. Samples are mono;
// the frontend copies each one to every channel.
func (c *Core) SetOutputChannels(count int) {
	c.channels = count
}

// Channels returns the channel count last set with SetOutputChannels.
func (c *Core) Channels() int {
	return c.channels
}

// Cycles returns the number of instructions executed.
func (c *Core) Cycles() uint64 {
	return c.cycles
}

// StepInstruction advances one clock cycle. The program counter walks the
// image and emulated time feeds the sample clock.
func (c *Core) StepInstruction() {
	c.cycles++
	if len(c.image) > 0 {
		c.pc = (c.pc + 1) % len(c.image)
	}

	c.sampleClock += 1.0 / ClockHz
	for c.sampleClock >= c.secondsPerSample {
		c.sampleClock -= c.secondsPerSample
		c.pushSample(c.nextToneSample())
	}
}

// StepFrame runs one frame of instructions.
func (c *Core) StepFrame() {
	for range ClockHz / FrameRate {
		c.StepInstruction()
	}
}

// PopSample returns the oldest queued sample, or 0 if none are queued.
func (c *Core) PopSample() float32 {
	if len(c.samples) == 0 {
		return 0
	}
	s := c.samples[0]
	c.samples = c.samples[1:]
	return s
}

func (c *Core) anyKeyHeld() bool {
	for _, k := range c.keys {
		if k {
			return true
		}
	}
	return false
}

func (c *Core) nextToneSample() float32 {
	if !c.anyKeyHeld() {
		c.phase = 0
		return 0
	}
	c.phase += ToneHz * c.secondsPerSample
	c.phase -= math.Floor(c.phase)
	if c.phase < 0.5 {
		return toneVolume
	}
	return -toneVolume
}

// pushSample queues s, dropping the oldest sample when nobody is consuming.
func (c *Core) pushSample(s float32) {
	if len(c.samples) >= maxQueuedSamples {
		c.samples = c.samples[1:]
	}
	c.samples = append(c.samples, s)
}

// Render draws the image bitmap scrolled by elapsed time, with the keypad
// indicator in the bottom-right corner.
func (c *Core) Render(frame []byte) {
	scroll := int(c.cycles/(ClockHz/8)) % Width
	for y := range Height {
		for x := range Width {
			col := colorOff
			if c.pixel((x+scroll)%Width, y) {
				col = colorOn
			}
			copy(frame[(y*Width+x)*4:], col[:])
		}
	}
	c.drawKeypad(frame)
}

// pixel reports the image bit at (x, y). Images larger than one screen
// wrap around, so the screen shows the page the program counter is on.
func (c *Core) pixel(x, y int) bool {
	if len(c.image) == 0 {
		return false
	}
	page := c.pc / (Width * Height / 8) * (Width * Height / 8)
	bit := y*Width + x
	idx := page + bit/8
	if idx >= len(c.image) {
		return false
	}
	return c.image[idx]&(0x80>>(bit%8)) != 0
}

// Keypad indicator geometry: 4x4 cells of 2x2 pixels with a 1 pixel gap.
const (
	keypadCell = 2
	keypadGap  = 1
	keypadSpan = 4*(keypadCell+keypadGap) - keypadGap
	keypadX    = Width - keypadSpan - 1
	keypadY    = Height - keypadSpan - 1
)

func (c *Core) drawKeypad(frame []byte) {
	for i, held := range c.keys {
		col := colorKeyOff
		if held {
			col = colorKeyOn
		}
		x0 := keypadX + (i%4)*(keypadCell+keypadGap)
		y0 := keypadY + (i/4)*(keypadCell+keypadGap)
		for dy := range keypadCell {
			for dx := range keypadCell {
				copy(frame[((y0+dy)*Width+x0+dx)*4:], col[:])
			}
		}
	}
}
