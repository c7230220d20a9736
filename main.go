package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", "warehouse", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	watch := flag.Bool("watch", false, "hot reload prefabs from disk")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.Log.SetLevel(logrus.DebugLevel)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("sneak")

	game, err := NewGame(*levelName, *debug, *watch)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		logger.Log.WithError(err).Fatal("game exited")
	}
}
