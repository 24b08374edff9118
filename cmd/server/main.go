package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}

	config.SetLogLevel()

	// Setup app
	app, cfg, services := internal.SetupApp()
	defer services.Close()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		slog.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			slog.Error("Failed to shut down", "error", err)
		}
	}()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
