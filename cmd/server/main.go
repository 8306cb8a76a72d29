package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/craftlocal/workshop_hub/internal/config"
	"github.com/craftlocal/workshop_hub/internal/events"
	"github.com/craftlocal/workshop_hub/internal/hash"
	"github.com/craftlocal/workshop_hub/internal/httpserver"
	"github.com/craftlocal/workshop_hub/internal/logging"
	loggingmw "github.com/craftlocal/workshop_hub/internal/middleware/logging"
	"github.com/craftlocal/workshop_hub/internal/schema"
	"github.com/craftlocal/workshop_hub/internal/storage"
	"github.com/craftlocal/workshop_hub/internal/storage/gormstore"
	"github.com/craftlocal/workshop_hub/internal/storage/memory"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	logger.Info("storage ready", "driver", cfg.STORAGE_DRIVER)

	if err := seedDemoUser(context.Background(), store, cfg); err != nil {
		log.Fatalf("demo user seed error: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
		logger.Info("event producer ready", "broker", cfg.KAFKA_ADDRESS)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, httpserver.NewDeps(store, producer))

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if gs, ok := store.(*gormstore.Store); ok {
		if sqlDB, err := gs.DB().DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("db close error: %v", err)
			}
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("producer close error: %v", err)
	}

	logger.Info("shutdown complete")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.STORAGE_DRIVER {
	case "", "memory":
		return memory.New(), nil
	case "sqlite":
		return gormstore.OpenSQLite(cfg.SQLITE_PATH)
	case "postgres":
		return gormstore.OpenPostgres(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.STORAGE_DRIVER)
	}
}

// seedDemoUser creates the single demo account the UI binds to, once.
func seedDemoUser(ctx context.Context, store storage.Store, cfg *config.Config) error {
	_, err := store.GetUserByUsername(ctx, cfg.DEMO_USERNAME)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	hashed, err := hash.Password(cfg.DEMO_PASSWORD)
	if err != nil {
		return err
	}
	_, err = store.CreateUser(ctx, &schema.InsertUser{
		Username: cfg.DEMO_USERNAME,
		Password: hashed,
	})
	return err
}
