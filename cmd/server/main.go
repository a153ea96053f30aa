package main

import (
	"facility-distance-service/internal/api"
	"facility-distance-service/internal/app"
	"facility-distance-service/internal/config"
	"facility-distance-service/internal/platform/obs"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// main is the HTTP composition root.
func main() {
	config.LoadDotEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	obs.Setup(cfg.LogLevel, os.Stderr)

	resolver, closeFn, err := app.Build(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	router := api.NewRouter(resolver)

	log.WithFields(log.Fields{
		"addr":     ":" + cfg.Port,
		"provider": cfg.Provider,
		"catalog":  cfg.CatalogSource,
	}).Info("server listening")
	// WriteTimeout covers a full sequential batch of routing calls.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
