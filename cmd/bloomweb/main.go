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

	"github.com/samphillips38/bloom-web-sub001/internal/config"
	"github.com/samphillips38/bloom-web-sub001/internal/logging"
	"github.com/samphillips38/bloom-web-sub001/internal/server"
	"github.com/samphillips38/bloom-web-sub001/internal/tokenstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.Log.Level)

	db, err := tokenstore.Open(cfg.Auth.DBPath)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	defer db.Close()

	srv := server.New(db, cfg, logger)

	// Hourly cleanup of stale sessions and rate-limit entries.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.TokenStore().DeleteStale(90 * 24 * time.Hour); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupDone:
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		fmt.Printf("Bloom running at http://localhost:%s\n", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	close(cleanupDone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
