package main

import (
	"flag"

	"github.com/justyntemme/imgsort/internal/app"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	configPath := flag.String("config", "", "Path to a config file (json, toml or yaml)")
	flag.Parse()

	manageConsole(*debug)

	app.Main(*debug, *configPath)
}
