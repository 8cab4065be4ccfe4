package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/unique-nails/internal/api"
	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/repository/kv"
	"github.com/dom/unique-nails/internal/service"
	"github.com/dom/unique-nails/internal/store"
	"github.com/dom/unique-nails/internal/store/memory"
	"github.com/dom/unique-nails/internal/store/postgres"
	"github.com/dom/unique-nails/internal/store/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize store
	kvStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer kvStore.Close()

	// Initialize repositories
	repos := kv.NewRepositories(kvStore)

	// Initialize services
	services := service.NewServices(repos, cfg)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (store: %s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return redis.New(ctx, cfg.KVURL, cfg.KVToken)
	case config.BackendPostgres:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.New(db)
	case config.BackendMemory:
		log.Println("WARNING: using the in-memory store; data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
