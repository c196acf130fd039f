package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/internal/seed"
	"auction-house/internal/server"
	"auction-house/services/bidding/stream"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.Log.Level); err != nil {
		utils.Fatal("failed to set log level", map[string]any{"error": err.Error()})
	}
	gin.SetMode(cfg.Gin.Mode)

	repo := repository.NewMemoryRepo()
	if cfg.Seed.Enabled {
		prepopulateLots(repo, cfg.Seed.File)
	}

	deps := server.NewDependencies(repo, stream.Options{
		WriteTimeout:    cfg.WS.WriteTimeout,
		PongTimeout:     cfg.WS.PongTimeout,
		PingInterval:    cfg.WS.PingInterval,
		SendBuffer:      cfg.WS.SendBuffer,
		MaxMessageBytes: cfg.WS.MaxMessageBytes,
	}, cfg.Dashboard.TopN)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(deps.Streams.CloseAll)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("shutting down auction server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.Fatal("server stopped with error", map[string]any{"error": err.Error()})
	}
	utils.Info("auction server stopped", map[string]any{"broadcast": deps.Dispatcher.Stats()})
}

// prepopulateLots loads the seed catalogue into the repo, from path when set
func prepopulateLots(repo *repository.MemoryRepo, path string) {
	var (
		catalogue seed.Catalogue
		err       error
	)
	if path != "" {
		catalogue, err = seed.LoadFile(path)
	} else {
		catalogue, err = seed.Default()
	}
	if err != nil {
		utils.Fatal("failed to load seed catalogue", map[string]any{"file": path, "error": err.Error()})
	}

	n, err := catalogue.Apply(repo, time.Now())
	if err != nil {
		utils.Fatal("failed to seed lots", map[string]any{"error": err.Error()})
	}
	utils.Info("seeded lots", map[string]any{"count": n})
}
