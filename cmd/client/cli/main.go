package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/newscheck/internal/buildinfo"
	"github.com/dmitrijs2005/newscheck/internal/client/cli"
	"github.com/dmitrijs2005/newscheck/internal/client/config"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// keep the REPL readable: only warnings and errors reach the terminal
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
