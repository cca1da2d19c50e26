package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/postline-dev/postline/internal/config"
	"github.com/postline-dev/postline/internal/logger"
	"github.com/postline-dev/postline/internal/router"
	"github.com/postline-dev/postline/internal/setup"
)

const (
	defaultPort  = "8080"
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setting up dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	server := configureServer(router.New(deps))
	logger.Log.Info("server started", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func configureServer(handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
