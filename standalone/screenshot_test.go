package standalone

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEncodeFrame(t *testing.T) {
	frame := make([]byte, 2*2*4)
	// Top-right pixel red
	copy(frame[4:8], []byte{0xff, 0, 0, 0xff})

	data, err := encodeFrame(2, 2, frame)
	if err != nil {
		t.Fatalf("encodeFrame: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", b)
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("pixel (1,0) = %x %x %x %x, want opaque red", r, g, b, a)
	}
}

func TestEncodeFrameInvalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		n    int
	}{
		{"short frame", 2, 2, 15},
		{"zero width", 0, 2, 0},
		{"negative height", 2, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := encodeFrame(tc.w, tc.h, make([]byte, tc.n)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScreenshotPrefix(t *testing.T) {
	tests := map[string]string{
		"/roms/Pong.ch8":     "Pong",
		"space invaders.ch8": "space_invaders",
		"":                   "screenshot",
		"noext":              "noext",
	}
	for in, want := range tests {
		if got := screenshotPrefix(in); got != want {
			t.Errorf("screenshotPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	m := NewScreenshotManager(nil, dir, "pong.ch8")
	m.now = func() time.Time { return time.Unix(1700000000, 0) }

	path, err := m.save([]byte("png"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if want := filepath.Join(dir, "pong-1700000000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("contents = %q", data)
	}
}

func TestScreenshotSaveWithoutDir(t *testing.T) {
	m := NewScreenshotManager(nil, "", "pong.ch8")
	if _, err := m.save([]byte("png")); err == nil {
		t.Error("expected error without a screenshot directory")
	}
}
