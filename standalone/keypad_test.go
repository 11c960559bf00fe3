package standalone

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/djrideout/basic-emu-frontend/keymap"
)

// recordingInjector mirrors the override set of a loop.
type recordingInjector struct {
	forced map[ebiten.Key]bool
	calls  []string
}

func newRecordingInjector() *recordingInjector {
	return &recordingInjector{forced: make(map[ebiten.Key]bool)}
}

func (r *recordingInjector) InjectPress(key ebiten.Key) {
	r.forced[key] = true
	r.calls = append(r.calls, "press "+key.String())
}

func (r *recordingInjector) InjectRelease(key ebiten.Key) {
	delete(r.forced, key)
	r.calls = append(r.calls, "release "+key.String())
}

func TestColumns(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 4: 2, 5: 3, 9: 3, 16: 4, 17: 5}
	for n, want := range tests {
		if got := columns(n); got != want {
			t.Errorf("columns(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestKeypadObserver(t *testing.T) {
	k := NewKeypad(keymap.New(ebiten.KeyQ, ebiten.KeyW), false)

	k.OnKeyPressed(1)
	if !reflect.DeepEqual(k.held, []bool{false, true}) {
		t.Errorf("held = %v, want only key 1", k.held)
	}
	k.OnKeyReleased(1)
	if k.held[1] {
		t.Error("key 1 should be released")
	}

	// Out of range indices are ignored
	k.OnKeyPressed(5)
	k.OnKeyReleased(-1)
	if !reflect.DeepEqual(k.held, []bool{false, false}) {
		t.Errorf("held = %v, want none", k.held)
	}
}

func TestKeypadButtons(t *testing.T) {
	inj := newRecordingInjector()
	k := NewKeypad(keymap.New(ebiten.KeyQ, ebiten.KeyW), true)
	k.Attach(inj)

	k.press(0)
	k.press(0)
	k.release(0)
	k.release(0)
	want := []string{"press Q", "release Q"}
	if !reflect.DeepEqual(inj.calls, want) {
		t.Errorf("calls = %v, want %v", inj.calls, want)
	}
}

func TestKeypadUnattached(t *testing.T) {
	k := NewKeypad(keymap.New(ebiten.KeyQ), true)
	k.press(0)
	if k.forced[0] {
		t.Error("an unattached keypad should not record presses")
	}
}

func TestKeypadHideReleasesOwnKeys(t *testing.T) {
	inj := newRecordingInjector()
	k := NewKeypad(keymap.New(ebiten.KeyQ, ebiten.KeyW), true)
	k.Attach(inj)

	// A key forced by someone else
	inj.InjectPress(ebiten.KeyE)
	k.press(1)

	if k.Toggle() {
		t.Fatal("Toggle should hide a visible keypad")
	}
	if inj.forced[ebiten.KeyW] {
		t.Error("hiding should release the key the keypad held")
	}
	if !inj.forced[ebiten.KeyE] {
		t.Error("hiding should leave keys forced elsewhere")
	}

	if !k.Toggle() {
		t.Error("Toggle should show the keypad again")
	}
}

// Rebuilding the buttons drops the one under the mouse, so its key has to
// be let go first.
func TestKeypadReleaseBeforeRebuild(t *testing.T) {
	inj := newRecordingInjector()
	k := NewKeypad(keymap.New(ebiten.KeyQ, ebiten.KeyW), true)
	k.Attach(inj)

	k.press(0)
	k.releaseAll()
	if len(inj.forced) != 0 {
		t.Errorf("forced = %v, want none", inj.forced)
	}
	if k.forced[0] {
		t.Error("keypad should no longer track key 0")
	}

	// A release from the old button afterwards is a no-op
	k.release(0)
	if n := len(inj.calls); n != 2 {
		t.Errorf("calls = %v, want press and one release", inj.calls)
	}
}
