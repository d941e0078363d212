package main

import (
	"io/fs"
	"log"
	"os"

	"github.com/flowgames/infinityrunner"
	"github.com/hajimehoshi/ebiten/v2"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.String("config", "infinityrunner.yaml", "YAML config file, ignored when missing")
	mode := flag.String("mode", "", "scene to build: primitive, showcase or runner")
	assetsDir := flag.String("assets", "", "directory to load models from instead of the embedded ones")
	width := flag.Int("width", 0, "window width")
	height := flag.Int("height", 0, "window height")
	debug := flag.Bool("debug", false, "show the FPS and load state overlay")
	flag.Parse()

	cfg, err := infinityrunner.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *mode != "" {
		m, err := infinityrunner.ParseMode(*mode)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Mode = m
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if flag.CommandLine.Changed("debug") {
		cfg.Debug = *debug
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var assets fs.FS = infinityrunner.DefaultAssets()
	if cfg.AssetsDir != "" {
		assets = os.DirFS(cfg.AssetsDir)
	}

	runner := infinityrunner.NewRunner(cfg, assets)
	game := infinityrunner.NewGame(runner, cfg.Window.Width, cfg.Window.Height)
	game.Overlay = runner.Status
	game.ShowOverlay = cfg.Debug

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Printf("dispose: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
