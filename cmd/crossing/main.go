// Command crossing is a desktop cross-the-road game built on ebiten.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/crossing/debugui"
	"github.com/plus3/crossing/game"
)

func main() {
	configPath := flag.String("config", "", "YAML or INI config file; overrides -preset.")
	preset := flag.String("preset", "arcade", "Built-in tuning: classic, arcade or inverted.")
	seed := flag.Uint64("seed", 0, "Spawn seed; 0 picks a random one.")
	debug := flag.Bool("debug", false, "Enable the ImGui debug overlay (toggle with F1).")
	mute := flag.Bool("mute", false, "Disable sound.")
	verbose := flag.Bool("v", false, "Log at debug level.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath, *preset)
	if err != nil {
		log.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	width, height := int(cfg.World.Width), int(cfg.World.Height)
	renderer := newScreenRenderer(cfg, game.NewRoadLayout(cfg))

	opts := []game.Option{game.WithRenderer(renderer), game.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}

	h := &host{renderer: renderer, width: width, height: height}
	if !*mute {
		b, err := newBeeper(log)
		if err != nil {
			log.Error("init audio", slog.Any("error", err))
			os.Exit(1)
		}
		h.beeper = b
		opts = append(opts, game.WithAudio(b))
	}

	h.game, err = game.New(cfg, opts...)
	if err != nil {
		log.Error("create game", slog.Any("error", err))
		os.Exit(1)
	}

	if *debug {
		h.overlay = debugui.NewOverlay(h.game, "Crossing (debug)", width, height)
		h.overlay.Visible = true
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("Crossing")
	}
	ebiten.SetTPS(int(time.Second / cfg.World.TickInterval))

	log.Info("starting", slog.String("preset", *preset), slog.String("config", *configPath), slog.Int("tps", ebiten.TPS()))
	if err := ebiten.RunGame(h); err != nil {
		log.Error("run game", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig(path, preset string) (game.Config, error) {
	if path != "" {
		return game.LoadConfig(path)
	}
	cfg, ok := game.Preset(preset)
	if !ok {
		return game.Config{}, fmt.Errorf("unknown preset %q", preset)
	}
	return cfg, nil
}
