package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ASCBird0277/ca-app/internal/config"
	"github.com/ASCBird0277/ca-app/internal/geocode"
	httpapi "github.com/ASCBird0277/ca-app/internal/http"
	"github.com/ASCBird0277/ca-app/internal/logger"
	"github.com/ASCBird0277/ca-app/internal/repository"
	"github.com/ASCBird0277/ca-app/internal/service"
	"github.com/ASCBird0277/ca-app/internal/store"

	"go.uber.org/zap"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "staffmap")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zlog.Sync()

	tables := repository.NewExcelTables(
		cfg.DataDir,
		cfg.Files.Employees,
		cfg.Files.Properties,
		cfg.Files.Positions,
		zlog,
	)

	var geocoder store.Geocoder
	if cfg.Geocode.Enabled {
		geocoder = geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.Email, zlog)
	}

	dataStore := store.NewDataStore(cfg, tables, geocoder, zlog)
	if _, err := dataStore.Reload(); err != nil {
		zlog.Fatal("initial load failed", zap.Error(err))
	}

	router := httpapi.NewRouter(zlog)
	router.RegisterAPIRoutes(httpapi.NewHandler(dataStore, zlog))

	srv := service.NewServer(cfg.HTTP.Addr, router, zlog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			zlog.Error("server exited", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}
