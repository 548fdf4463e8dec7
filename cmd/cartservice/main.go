package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/prasetya/cart-service/internal/cart/app"
	"github.com/prasetya/cart-service/internal/cart/infra/catalog"
	cartmongo "github.com/prasetya/cart-service/internal/cart/infra/mongodb"
	"github.com/prasetya/cart-service/internal/cart/rest"
	"github.com/prasetya/cart-service/pkg/config"
	"github.com/prasetya/cart-service/pkg/logger"
	"github.com/prasetya/cart-service/pkg/mongodb"
	"github.com/prasetya/cart-service/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "cartservice",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	client, db, err := mongodb.Open(ctx, mongodb.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
	})
	if err != nil {
		log.Error("mongo open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect error", slog.Any("err", err))
		}
	}()

	repo := cartmongo.NewCartRepo(db)
	products := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	svc := app.NewService(repo, products, cfg.SummaryMaxConcurrent)

	handler := rest.NewHandler(svc, log)
	router := rest.NewRouter(handler, log, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
