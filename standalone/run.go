// Package standalone hosts a frontend session in an ebiten window.
package standalone

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	emucore "github.com/djrideout/basic-emu-frontend/api"
	"github.com/djrideout/basic-emu-frontend/audio"
	"github.com/djrideout/basic-emu-frontend/frontend"
	"github.com/djrideout/basic-emu-frontend/romloader"
	"github.com/djrideout/basic-emu-frontend/standalone/storage"
)

// Options configures a windowed session.
type Options struct {
	SyncMode emucore.SyncMode
	// Backend is "oto" or "null". Empty selects oto.
	Backend string
	// Volume scales the output, 1.0 being unchanged. 0 is silent.
	Volume          float64
	MaxStepsPerLock int
	// Scale is the initial integer window scale. 0 uses the core's default.
	Scale      int
	Fullscreen bool
	// Keys overrides the core's default key layout when non-empty.
	Keys    []string
	ExitKey string
	Keypad  bool
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string
}

// OptionsFromConfig converts a validated config into session options.
func OptionsFromConfig(cfg *storage.Config) (Options, error) {
	mode, err := emucore.ParseSyncMode(cfg.SyncMode)
	if err != nil {
		return Options{}, err
	}
	backend := cfg.Audio.Backend
	if cfg.Audio.Muted {
		backend = storage.BackendNull
	}
	return Options{
		SyncMode:        mode,
		Backend:         backend,
		Volume:          cfg.Audio.Volume,
		MaxStepsPerLock: cfg.Audio.MaxStepsPerLock,
		Scale:           cfg.Window.Scale,
		Fullscreen:      cfg.Window.Fullscreen,
		Keys:            cfg.Input.Keys,
		ExitKey:         cfg.Input.ExitKey,
		Keypad:          cfg.Overlay.Keypad,
	}, nil
}

func newBackend(name string) (audio.Backend, error) {
	switch name {
	case "", storage.BackendOto:
		return audio.NewOtoBackend(), nil
	case storage.BackendNull:
		return audio.NewNullBackend(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", name)
	}
}

// Run creates a core from image and runs it in a window until the window is
// closed or the exit key is pressed.
func Run(factory emucore.CoreFactory, image *romloader.Image, opts Options) error {
	info := factory.SystemInfo()

	names := opts.Keys
	if len(names) == 0 {
		names = info.Keys
	}
	keys, exitKeys, err := buildKeymap(names, info.KeyCount(), opts.ExitKey)
	if err != nil {
		return fmt.Errorf("key layout: %w", err)
	}

	backend, err := newBackend(opts.Backend)
	if err != nil {
		return err
	}

	core, err := factory.CreateCore(image.Data)
	if err != nil {
		return fmt.Errorf("create core for %s: %w", image, err)
	}

	keypad := NewKeypad(keys, opts.Keypad)
	session, err := frontend.New(core, keys, opts.SyncMode, frontend.Options{
		Backend:         backend,
		Observer:        keypad,
		ExitKeys:        exitKeys,
		MaxStepsPerLock: opts.MaxStepsPerLock,
		Volume:          opts.Volume,
		Muted:           opts.Volume == 0,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	keypad.Attach(session)

	notification := NewNotification()
	game := newGame(session, keypad, NewScreenshotManager(notification, opts.ScreenshotDir, image.Name), notification)

	w, h := session.Loop().Size()
	scale := opts.Scale
	if scale <= 0 {
		scale = max(info.Scale, 1)
	}
	title := info.Title
	if image.Name != "" {
		title = fmt.Sprintf("%s - %s", info.Title, image.Name)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowSizeLimits(w, h, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetFullscreen(opts.Fullscreen)

	dev := session.Audio().Device()
	log.Printf("Running %s in %s sync mode, audio %q at %d Hz", image, opts.SyncMode, dev.Name, dev.SampleRate)
	if err := session.Start(); err != nil {
		return err
	}
	return ebiten.RunGame(game)
}
