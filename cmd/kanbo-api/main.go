package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/kanbo-dev/kanbo/internal/config"
	"github.com/kanbo-dev/kanbo/internal/logger"
	"github.com/kanbo-dev/kanbo/internal/router"
	"github.com/kanbo-dev/kanbo/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Public.Port)
	logger.Log.Info("server started", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
