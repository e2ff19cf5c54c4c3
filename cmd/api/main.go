package main

import (
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/eskrenkovic/product-draft-editor/internal/config"
	"github.com/eskrenkovic/product-draft-editor/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 {
		rootPath := os.Args[1]
		if rootPath == "" {
			log.Fatal("root directory path is empty")
		}

		if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
			log.Fatal(err)
		}
	}

	config, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = config.Logger.Sync() }()

	server, err := server.NewHTTPServer(config)
	if err != nil {
		config.Logger.Fatal("failed to create server", zap.Error(err))
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil {
			config.Logger.Error("server stopped", zap.Error(err))
		}
	case sig := <-signals:
		config.Logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	if err := server.Stop(); err != nil {
		config.Logger.Error("failed to stop server", zap.Error(err))
	}
}
