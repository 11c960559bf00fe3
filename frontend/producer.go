package frontend

import (
	"runtime"

	emucore "github.com/djrideout/basic-emu-frontend/api"
)

// DefaultMaxStepsPerLock bounds how many instructions the audio context runs
// before giving the core lock up when no sample is ready.
const DefaultMaxStepsPerLock = 4096

// Producer supplies one output sample per call from the audio context.
//
// In AudioLocked mode the producer is the only thing that advances emulation:
// it steps the core until a sample is pending and returns it. In FrameLocked
// mode the display loop advances emulation and the producer drains whatever
// samples accumulated, returning silence.
type Producer struct {
	shared   *SharedCore
	mode     emucore.SyncMode
	maxSteps int
}

// NewProducer creates a producer for mode. maxSteps <= 0 lets the
// AudioLocked loop run until a sample is ready without releasing the lock.
func NewProducer(shared *SharedCore, mode emucore.SyncMode, maxSteps int) *Producer {
	return &Producer{shared: shared, mode: mode, maxSteps: maxSteps}
}

// Next returns the next sample. It blocks while the display loop holds the
// core.
func (p *Producer) Next() float32 {
	if p.mode == emucore.FrameLocked {
		p.drain()
		return 0
	}
	for {
		core := p.shared.Lock()
		for n := 0; core.PendingSamples() == 0; n++ {
			if p.maxSteps > 0 && n >= p.maxSteps {
				break
			}
			core.StepInstruction()
		}
		if core.PendingSamples() > 0 {
			sample := core.PopSample()
			p.shared.Unlock()
			return sample
		}
		p.shared.Unlock()
		runtime.Gosched()
	}
}

func (p *Producer) drain() {
	core := p.shared.Lock()
	for core.PendingSamples() > 0 {
		core.PopSample()
	}
	p.shared.Unlock()
}
