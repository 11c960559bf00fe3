package frontend

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/djrideout/basic-emu-frontend/audio"
)

// fakeCore emits one sample every stepsPerSample instructions and
// samplesPerFrame samples per StepFrame. It counts concurrent entries to
// catch unguarded access.
type fakeCore struct {
	width, height   int
	stepsPerSample  int
	samplesPerFrame int

	active     atomic.Int32
	violations atomic.Int32

	steps         int
	frames        int
	pops          int
	sinceSample   int
	pending       []float32
	keys          []bool
	secsPerSample float32
	channels      int
	renders       int
	fill          byte
}

func newFakeCore(stepsPerSample int) *fakeCore {
	return &fakeCore{
		width:          4,
		height:         2,
		stepsPerSample: stepsPerSample,
		keys:           make([]bool, 16),
	}
}

func (c *fakeCore) enter() {
	if c.active.Add(1) > 1 {
		c.violations.Add(1)
	}
}

func (c *fakeCore) exit() { c.active.Add(-1) }

func (c *fakeCore) Width() int { c.enter(); defer c.exit(); return c.width }
func (c *fakeCore) Height() int { c.enter(); defer c.exit(); return c.height }

func (c *fakeCore) PendingSamples() int {
	c.enter()
	defer c.exit()
	return len(c.pending)
}

func (c *fakeCore) KeyPressed(index int) bool {
	c.enter()
	defer c.exit()
	return c.keys[index]
}

func (c *fakeCore) Render(frame []byte) {
	c.enter()
	defer c.exit()
	c.renders++
	for i := range frame {
		frame[i] = c.fill
	}
}

func (c *fakeCore) SetSecondsPerSample(s float32) {
	c.enter()
	defer c.exit()
	c.secsPerSample = s
}

func (c *fakeCore) SetOutputChannels(n int) {
	c.enter()
	defer c.exit()
	c.channels = n
}

func (c *fakeCore) PressKey(index int) {
	c.enter()
	defer c.exit()
	c.keys[index] = true
}

func (c *fakeCore) ReleaseKey(index int) {
	c.enter()
	defer c.exit()
	c.keys[index] = false
}

func (c *fakeCore) StepInstruction() {
	c.enter()
	defer c.exit()
	c.steps++
	if c.stepsPerSample <= 0 {
		return
	}
	c.sinceSample++
	if c.sinceSample >= c.stepsPerSample {
		c.sinceSample = 0
		c.pending = append(c.pending, float32(c.steps))
	}
}

func (c *fakeCore) StepFrame() {
	c.enter()
	defer c.exit()
	c.frames++
	for range c.samplesPerFrame {
		c.pending = append(c.pending, 1)
	}
}

func (c *fakeCore) PopSample() float32 {
	c.enter()
	defer c.exit()
	c.pops++
	s := c.pending[0]
	c.pending = c.pending[1:]
	return s
}

type fakeInput struct {
	closeRequested bool
	just           map[ebiten.Key]bool
	held           map[ebiten.Key]bool
	resized        bool
	w, h           int
}

func (in *fakeInput) CloseRequested() bool { return in.closeRequested }
func (in *fakeInput) JustPressed(k ebiten.Key) bool { return in.just[k] }
func (in *fakeInput) Held(k ebiten.Key) bool { return in.held[k] }
func (in *fakeInput) Resized() (int, int, bool) { return in.w, in.h, in.resized }

type fakeSurface struct {
	presentErr error
	resizeErr  error
	presents   int
	last       []byte
	redraws    int
	w, h       int
}

func (s *fakeSurface) Present(frame []byte) error {
	if s.presentErr != nil {
		return s.presentErr
	}
	s.presents++
	s.last = append(s.last[:0], frame...)
	return nil
}

func (s *fakeSurface) Resize(w, h int) error {
	if s.resizeErr != nil {
		return s.resizeErr
	}
	s.w, s.h = w, h
	return nil
}

func (s *fakeSurface) RequestRedraw() { s.redraws++ }

type keyEvent struct {
	pressed bool
	index   int
}

type recordingObserver struct {
	events []keyEvent
	// shared, when set, is probed in each callback to detect a held core lock
	shared   *SharedCore
	lockHeld bool
}

func (o *recordingObserver) check() {
	if o.shared == nil {
		return
	}
	if o.shared.mu.TryLock() {
		o.shared.mu.Unlock()
	} else {
		o.lockHeld = true
	}
}

func (o *recordingObserver) OnKeyPressed(i int) {
	o.check()
	o.events = append(o.events, keyEvent{true, i})
}

func (o *recordingObserver) OnKeyReleased(i int) {
	o.check()
	o.events = append(o.events, keyEvent{false, i})
}

// manualBackend hands the engine's reader back to the test so it can pump
// frames by hand in place of a device.
type manualBackend struct {
	dev audio.Device

	mu  sync.Mutex
	src io.Reader
}

func (b *manualBackend) DefaultOutput() (audio.Device, error) { return b.dev, nil }

func (b *manualBackend) Open(cfg audio.Config, src io.Reader) (audio.Stream, error) {
	b.mu.Lock()
	b.src = src
	b.mu.Unlock()
	return nopStream{}, nil
}

func (b *manualBackend) pump(frames int) []byte {
	b.mu.Lock()
	src := b.src
	b.mu.Unlock()
	p := make([]byte, frames*b.dev.Channels*4)
	src.Read(p)
	return p
}

type nopStream struct{}

func (nopStream) Play() error { return nil }
func (nopStream) Err() error { return nil }
func (nopStream) Close() error { return nil }
