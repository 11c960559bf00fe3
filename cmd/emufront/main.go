// Command emufront runs a program image on the demo core with audio and a
// keyboard-driven display window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sqweek/dialog"

	emucore "github.com/djrideout/basic-emu-frontend/api"
	"github.com/djrideout/basic-emu-frontend/democore"
	"github.com/djrideout/basic-emu-frontend/romloader"
	"github.com/djrideout/basic-emu-frontend/standalone"
	"github.com/djrideout/basic-emu-frontend/standalone/storage"
)

func main() {
	log.SetPrefix("emufront: ")
	log.SetFlags(0)

	var (
		syncFlag   = flag.String("sync", "", "sync mode: `audio` or frame (default from config)")
		configFlag = flag.String("config", "", "read settings from `file` instead of the data directory")
		muteFlag   = flag.Bool("mute", false, "play no audio; emulation is still paced by a silent clock")
		scaleFlag  = flag.Int("scale", 0, "initial window scale")
		keypadFlag = flag.Bool("keypad", false, "show the on-screen keypad")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [program image]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
	}

	factory := democore.Factory{}
	info := factory.SystemInfo()
	dirs, err := storage.UserDirs(info.Name)
	if err != nil {
		log.Fatal(err)
	}

	var cfg *storage.Config
	if *configFlag != "" {
		cfg, err = storage.LoadConfigFrom(*configFlag)
	} else {
		cfg, err = dirs.LoadConfig()
	}
	if err != nil {
		log.Fatal(err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["sync"] {
		cfg.SyncMode = *syncFlag
	}
	if set["mute"] {
		cfg.Audio.Muted = *muteFlag
	}
	if set["scale"] {
		cfg.Window.Scale = *scaleFlag
	}
	if set["keypad"] {
		cfg.Overlay.Keypad = *keypadFlag
	}
	if problems := storage.ValidateConfig(cfg); len(problems) > 0 {
		for _, p := range problems {
			log.Printf("Warning: %s", p)
		}
		cfg = storage.CorrectConfig(cfg)
	}

	opts, err := standalone.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	opts.ScreenshotDir = dirs.ScreenshotDir()

	path := flag.Arg(0)
	if path == "" {
		path, err = pickImage(info)
		if errors.Is(err, dialog.ErrCancelled) {
			return
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	image, err := romloader.Load(path, info.Extensions)
	if err != nil {
		log.Fatal(err)
	}
	if err := standalone.Run(factory, image, opts); err != nil {
		log.Fatal(err)
	}
}

func pickImage(info emucore.SystemInfo) (string, error) {
	exts := make([]string, 0, len(info.Extensions))
	for _, e := range info.Extensions {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return dialog.File().
		Title("Open Program Image").
		Filter(info.Title+" programs", exts...).
		Filter("Archives", "zip", "7z", "rar", "gz", "tgz").
		Load()
}
