package main

import (
	"log"
	"net/http"

	"github.com/robfig/cron/v3"

	"github.com/philippauer/ha-wartungsplaner/internal/config"
	"github.com/philippauer/ha-wartungsplaner/internal/serverapp"
)

func main() {
	cfg, err := config.Load("wartungsplaner.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	// Statuses drift as days pass even when nothing is edited, so the
	// snapshot is recomputed on a schedule.
	c := cron.New()
	if _, err := c.AddFunc(cfg.Refresh.Cron, func() { app.Engine.Refresh() }); err != nil {
		log.Fatalf("refresh schedule %q: %v", cfg.Refresh.Cron, err)
	}
	c.Start()
	defer c.Stop()

	log.Printf("wartungsplaner listening on %s (data: %s, refresh: %s)",
		cfg.Server.Addr, cfg.Storage.DataDir, cfg.Refresh.Cron)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, app.Handler))
}
