// main is the entry point of the cloudcafe subscription service.
//
// STARTUP SEQUENCE:
//  1. Load layered configuration (base.yaml, <APP_ENV>.yaml, environment)
//  2. Initialise the logger and tracer provider
//  3. Connect to the store (shared pool for every request)
//  4. Bind the listener and register routes
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	APP_ENV=development go run ./cmd/cloudcafe
//
// Apply the schema first with:
//
//	go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/startup"
	"github.com/Veikkosuhonen/cloudcafe/internal/telemetry"
)

const serviceName = "cloudcafe"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad exits the process if any layer is missing or invalid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger and Tracing ──────────────────────────────────
	log, err := telemetry.NewLogger(cfg.Env, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %s\n", err)
		os.Exit(1)
	}
	telemetry.Init(log)

	spans, err := telemetry.NewSpanExporter(os.Stdout)
	if err != nil {
		log.Error("failed to initialise span exporter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	tp := telemetry.NewTracerProvider(serviceName, sdktrace.WithBatcher(spans))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	log.Info("starting "+serviceName, slog.String("env", string(cfg.Env)))

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := startup.OpenStorage(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	log.Info("storage initialised", slog.String("driver", cfg.Database.Driver))

	// ── 4. Bind and Register Routes ───────────────────────────────────────
	listener, err := startup.Listen(cfg.Application)
	if err != nil {
		log.Error("failed to bind", slog.String("address", cfg.Application.Address()),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := startup.NewRouter(startup.Deps{
		Storage:        store,
		TracerProvider: tp,
		Registry:       registry,
		AllowedOrigins: cfg.Application.AllowedOrigins,
	})
	server := startup.New(listener, router, cfg.Application)

	// ── 5. Serve ──────────────────────────────────────────────────────────
	// Serve blocks, so it runs in its own goroutine and main waits for a
	// signal below.
	go func() {
		log.Info("server started", slog.String("address", server.Addr()))
		if err := server.Serve(); err != nil {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
