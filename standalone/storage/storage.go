package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	configFile    = "config.json"
	screenshotDir = "screenshots"
)

// Dirs is the on-disk layout of one application: config.json in Base and
// screenshots in a subdirectory.
type Dirs struct {
	Base string
}

// UserDirs returns the layout under the per-user data directory:
//   - macOS: ~/Library/Application Support/<app>
//   - Windows: %APPDATA%\<app>
//   - others: $XDG_DATA_HOME/<app>, or ~/.local/share/<app>
func UserDirs(app string) (Dirs, error) {
	root, err := dataRoot(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return Dirs{}, err
	}
	return Dirs{Base: filepath.Join(root, app)}, nil
}

func dataRoot(goos string, getenv func(string) string, homeDir func() (string, error)) (string, error) {
	if goos == "windows" {
		if dir := getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return "", errors.New("APPDATA environment variable not set")
	}
	if goos != "darwin" {
		if dir := getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Application Support"), nil
	}
	return filepath.Join(home, ".local", "share"), nil
}

// ConfigPath returns the path of config.json.
func (d Dirs) ConfigPath() string {
	return filepath.Join(d.Base, configFile)
}

// ScreenshotDir returns the directory screenshots are written to.
func (d Dirs) ScreenshotDir() string {
	return filepath.Join(d.Base, screenshotDir)
}

// Ensure creates every directory of the layout.
func (d Dirs) Ensure() error {
	if d.Base == "" {
		return errors.New("no data directory")
	}
	if err := os.MkdirAll(d.ScreenshotDir(), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// LoadConfig reads config.json. On first run the directories are created
// and a default config is written before it is read back.
func (d Dirs) LoadConfig() (*Config, error) {
	if err := d.Ensure(); err != nil {
		return nil, err
	}
	path := d.ConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveConfig(path, DefaultConfig()); err != nil {
			return nil, err
		}
	}
	return LoadConfigFrom(path)
}

// writeJSON replaces path with the indented JSON of v. The data goes to a
// temporary file in the same directory which is then renamed over path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
