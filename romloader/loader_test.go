package romloader

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
)

var testExtensions = []string{".ch8"}

// writeFile creates a file named name in a fresh temp dir
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// writeZip creates a zip archive holding the given entries in order
func writeZip(t *testing.T, entries map[string][]byte, order ...string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to zip: %v", name, err)
		}
		if _, err := fw.Write(entries[name]); err != nil {
			t.Fatalf("Failed to write %s to zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return writeFile(t, "test.zip", buf.Bytes())
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

func tarBytes(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(data)), Typeflag: tar.TypeReg}
	if err := w.WriteHeader(hdr); err != nil {
		t.Fatalf("Failed to write tar header: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write tar entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	return buf.Bytes()
}

func TestLoadRaw(t *testing.T) {
	data := []byte{0x00, 0xE0, 0xA2, 0x2A}
	path := writeFile(t, "maze.ch8", data)

	img, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(img.Data, data) {
		t.Errorf("Data = %v, want %v", img.Data, data)
	}
	if img.Name != "maze.ch8" {
		t.Errorf("Name = %q, want maze.ch8", img.Name)
	}
	if img.CRC32 != crc32.ChecksumIEEE(data) {
		t.Errorf("CRC32 = %08x, want %08x", img.CRC32, crc32.ChecksumIEEE(data))
	}
}

func TestLoadRawCaseInsensitive(t *testing.T) {
	path := writeFile(t, "MAZE.CH8", []byte{1})
	if _, err := Load(path, testExtensions); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.ch8", nil)
	img, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(img.Data) != 0 {
		t.Errorf("expected empty data, got %d bytes", len(img.Data))
	}
}

func TestLoadZip(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC}
	path := writeZip(t, map[string][]byte{
		"README.txt":       []byte("hello"),
		"games/pong.ch8":   data,
		"games/tetris.ch8": {0x01},
	}, "README.txt", "games/pong.ch8", "games/tetris.ch8")

	img, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(img.Data, data) {
		t.Errorf("Data = %v, want %v", img.Data, data)
	}
	if img.Name != "pong.ch8" {
		t.Errorf("Name = %q, want pong.ch8", img.Name)
	}
}

func TestLoadZipNoImage(t *testing.T) {
	path := writeZip(t, map[string][]byte{"README.txt": []byte("hello")}, "README.txt")
	_, err := Load(path, testExtensions)
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestLoadGzip(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33}
	path := writeFile(t, "pong.ch8.gz", gzipBytes(t, data))

	img, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(img.Data, data) {
		t.Errorf("Data = %v, want %v", img.Data, data)
	}
	if img.Name != "pong.ch8" {
		t.Errorf("Name = %q, want pong.ch8", img.Name)
	}
}

func TestLoadTarGz(t *testing.T) {
	data := []byte{0x44, 0x55}
	for _, name := range []string{"games.tar.gz", "games.tgz"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, gzipBytes(t, tarBytes(t, "dir/ibm.ch8", data)))
			img, err := Load(path, testExtensions)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(img.Data, data) || img.Name != "ibm.ch8" {
				t.Errorf("got %v %q", img.Data, img.Name)
			}
		})
	}
}

func TestLoadTarGzNoImage(t *testing.T) {
	path := writeFile(t, "games.tar.gz", gzipBytes(t, tarBytes(t, "notes.txt", []byte("x"))))
	if _, err := Load(path, testExtensions); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestLoadTooLarge(t *testing.T) {
	l := Loader{Extensions: testExtensions, MaxSize: 16}
	tests := []struct {
		name string
		data []byte
	}{
		{"big.ch8", make([]byte, 17)},
		{"big.ch8.gz", gzipBytes(t, make([]byte, 17))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(writeFile(t, tt.name, tt.data))
			if !errors.Is(err, ErrTooLarge) {
				t.Errorf("expected ErrTooLarge, got %v", err)
			}
		})
	}

	img, err := l.Load(writeFile(t, "fits.ch8", make([]byte, 16)))
	if err != nil {
		t.Fatalf("image at the limit: %v", err)
	}
	if len(img.Data) != 16 {
		t.Errorf("len = %d, want 16", len(img.Data))
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, "notes.xyz", []byte{1, 2, 3})
	if _, err := Load(path, testExtensions); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/game.ch8", testExtensions)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDetectMagic(t *testing.T) {
	l := Loader{Extensions: testExtensions}
	tests := []struct {
		header []byte
		want   format
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04}, formatZIP},
		{[]byte{0x50, 0x4B, 0x05, 0x06}, formatZIP},
		{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, format7z},
		{[]byte{0x1F, 0x8B}, formatGzip},
		{[]byte{0x52, 0x61, 0x72, 0x21}, formatRAR},
		{[]byte{0x37, 0x7A, 0xBC}, formatUnknown},
	}
	for _, tt := range tests {
		if got := l.detect(tt.header, "file.dat"); got != tt.want {
			t.Errorf("detect(%x) = %d, want %d", tt.header, got, tt.want)
		}
	}
}

func TestDetectExtension(t *testing.T) {
	l := Loader{Extensions: []string{".ch8", ".bin"}}
	tests := []struct {
		path string
		want format
	}{
		{"game.ch8", formatRaw},
		{"game.CH8", formatRaw},
		{"game.bin", formatRaw},
		{"game.zip", formatZIP},
		{"game.ZIP", formatZIP},
		{"game.7z", format7z},
		{"game.gz", formatGzip},
		{"game.tgz", formatGzip},
		{"game.tar.gz", formatGzip},
		{"game.rar", formatRAR},
		{"game.RAR", formatRAR},
		{"game.sms", formatUnknown},
		{"game.ch8.bak", formatUnknown},
	}
	for _, tt := range tests {
		if got := l.detect(nil, tt.path); got != tt.want {
			t.Errorf("detect(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestFromBytes(t *testing.T) {
	data := []byte("program")
	img := FromBytes("prog.ch8", data)
	if img.CRC32 != crc32.ChecksumIEEE(data) {
		t.Errorf("CRC32 = %08x", img.CRC32)
	}
	want := fmt.Sprintf("prog.ch8 (7 bytes, crc32 %08x)", img.CRC32)
	if got := img.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
