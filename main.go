package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragdollcannon/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "hot reload yaml specs from the config directory")
	configDir := flag.String("config", prefabs.Dir(), "directory checked for yaml specs before the embedded defaults")
	flag.Parse()

	prefabs.SetDir(*configDir)

	game, err := NewGame(*debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowSize(game.Layout(0, 0))
	ebiten.SetWindowTitle(game.title)
	if game.tps > 0 {
		ebiten.SetTPS(game.tps)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
