package standalone

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardOK   bool
)

// ScreenshotManager saves the native-resolution frame to the screenshot
// directory and copies it to the clipboard.
type ScreenshotManager struct {
	notification *Notification
	dir          string
	prefix       string
	now          func() time.Time
}

// NewScreenshotManager creates a screenshot manager writing to dir. prefix
// names the files, normally the program image name.
func NewScreenshotManager(notification *Notification, dir, prefix string) *ScreenshotManager {
	return &ScreenshotManager{
		notification: notification,
		dir:          dir,
		prefix:       screenshotPrefix(prefix),
		now:          time.Now,
	}
}

// TakeScreenshot encodes the frame and saves it. Clipboard failures are
// logged and do not fail the capture.
func (m *ScreenshotManager) TakeScreenshot(width, height int, frame []byte) error {
	data, err := encodeFrame(width, height, frame)
	if err != nil {
		return err
	}

	path, err := m.save(data)
	if err != nil {
		return err
	}

	copyToClipboard(data)
	if m.notification != nil {
		m.notification.Show("Saved " + filepath.Base(path))
	}
	return nil
}

func (m *ScreenshotManager) save(data []byte) (string, error) {
	if m.dir == "" {
		return "", errors.New("no screenshot directory configured")
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	name := fmt.Sprintf("%s-%d.png", m.prefix, m.now().Unix())
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}

// encodeFrame converts an RGBA frame to PNG bytes.
func encodeFrame(width, height int, frame []byte) ([]byte, error) {
	if width <= 0 || height <= 0 || len(frame) != width*height*4 {
		return nil, fmt.Errorf("invalid %dx%d frame of %d bytes", width, height, len(frame))
	}
	img := &image.RGBA{
		Pix:    append([]byte(nil), frame...),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// screenshotPrefix turns an image name into a file name prefix.
func screenshotPrefix(name string) string {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "screenshot"
	}
	return name
}

func copyToClipboard(data []byte) {
	clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("Warning: clipboard not available: %v", err)
			return
		}
		clipboardOK = true
	})
	if clipboardOK {
		clipboard.Write(clipboard.FmtImage, data)
	}
}
