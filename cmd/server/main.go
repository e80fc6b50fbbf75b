package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/api"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/catalog"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/config"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/database"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/repository"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/scheduler"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/service"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/transfer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	priceRepo := repository.NewPriceRepository(db)

	index := catalog.New(priceRepo)
	if err := index.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load city catalog: %v", err)
	}

	// Create services
	svcs := api.Services{
		System:   service.NewSystemService(db),
		Price:    service.NewPriceService(db, priceRepo, index),
		Forecast: service.NewForecastService(priceRepo),
		Transfer: service.NewTransferService(db, priceRepo, index),
	}

	// Create router
	router := api.NewRouter(svcs, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.Export.Schedule != "" {
		format, err := transfer.ParseFormatName(cfg.Export.Format)
		if err != nil {
			log.Fatalf("Invalid export format: %v", err)
		}

		job := scheduler.NewExportJob(ctx, svcs.Transfer, cfg.Export.Dir, format)
		if err := job.Schedule(cfg.Export.Schedule); err != nil {
			log.Fatalf("Failed to schedule export: %v", err)
		}
		job.Start()
		defer job.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Wait for interrupt signal (or a listener failure) for graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped with error: %v", err)
		return
	}

	log.Println("Server exited")
}
