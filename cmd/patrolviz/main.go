package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/rcai/common"
)

func main() {
	prefab := flag.String("prefab", "grunt.yaml", "controller prefab whose patrol path is shown")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := common.Logger("patrolviz")
	if err := common.SetLevel(*level); err != nil {
		log.WithError(err).Fatal("bad log level")
	}

	viz, err := newViewer(*prefab)
	if err != nil {
		log.WithError(err).WithField("prefab", *prefab).Fatal("failed to load patrol path")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("patrolviz - " + *prefab)

	if err := ebiten.RunGame(viz); err != nil {
		log.WithError(err).Fatal("viewer stopped")
	}
}
