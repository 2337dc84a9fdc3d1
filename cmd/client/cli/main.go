package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/glidepath/internal/client/cli"
	"github.com/dmitrijs2005/glidepath/internal/client/config"
	"github.com/dmitrijs2005/glidepath/internal/logging"
	"github.com/lmittmann/tint"
)

func main() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.Kitchen,
	})
	logger := logging.NewSlogLogger(slog.New(handler))

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
