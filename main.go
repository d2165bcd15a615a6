package main

import (
	"log"

	"cinematch/models"
	"cinematch/web"

	"github.com/rohanthewiz/logger"
)

func main() {
	cfg, err := models.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	logger.SetLogLevel(cfg.LogLevel)

	app, err := web.NewApp(cfg, nil, nil)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer app.Close()

	logger.Info("Catalog loaded", "titles", app.Catalog.Len(), "backend", cfg.BackendURL)

	web.StartMetricsServer(cfg.MetricsAddress)

	srv := web.NewServer(app)
	if err := web.Run(srv, cfg.Address); err != nil {
		logger.LogErr(err, "web server stopped")
		app.Close()
		log.Fatal(err)
	}
}
