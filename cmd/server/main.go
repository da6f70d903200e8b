package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mtthdn/lacuene-exp/internal/platform/config"
	"github.com/mtthdn/lacuene-exp/internal/platform/httpserver"
	"github.com/mtthdn/lacuene-exp/internal/platform/logger"
	"github.com/mtthdn/lacuene-exp/internal/platform/middleware"
	"github.com/mtthdn/lacuene-exp/internal/serving/handler"
	"github.com/mtthdn/lacuene-exp/internal/serving/metrics"
	"github.com/mtthdn/lacuene-exp/internal/snapshot"
	"github.com/mtthdn/lacuene-exp/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Query logic lives in the internal packages; data
// is loaded once here and never mutated.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	snap := snapshot.Load(snapshot.Paths{
		CuratedSources: cfg.Paths.CuratedSources(),
		GapReport:      cfg.Paths.GapReport(),
		ExpandedGenes:  cfg.Paths.ExpandedGenes(),
		BulkSummary:    cfg.Paths.BulkSummary(),
		Candidates:     cfg.Paths.GapCandidates(),
		DerivedDir:     cfg.Paths.DerivedDir,
	}, log)

	h := handler.New(snap, log, metrics.New())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Handle("/metrics", promhttp.Handler())
	h.Register(r)

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting lacuene-exp API", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
