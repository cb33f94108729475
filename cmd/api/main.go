package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	"github.com/ChaiWithJai/gtm-agent/internal/config"
	"github.com/ChaiWithJai/gtm-agent/internal/handler"
	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
	"github.com/ChaiWithJai/gtm-agent/internal/service/ai"
	companyService "github.com/ChaiWithJai/gtm-agent/internal/service/company"
	"github.com/ChaiWithJai/gtm-agent/internal/service/orchestrator"
	"github.com/ChaiWithJai/gtm-agent/internal/service/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog := diagnostic.NewCatalog(diagnostic.Seed())
	engine := scoring.NewEngine(catalog, scoring.DefaultConfig(catalog.Size()))

	sessionStore := store.New(cfg.Session.IdleTTL)
	sessionStore.StartEvictor(ctx)

	resolver := companyService.NewWebResolver(cfg.Fetch.Timeout)

	// The generator is optional: without Ark credentials the diagnostic
	// still runs and artifact generation reports per-artifact errors.
	var generator ai.Generator
	if cfg.AI.Enabled() {
		svc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize artifact generator: %v", err)
		} else {
			generator = svc
			log.Println("artifact generator initialized successfully")
		}
	} else {
		log.Println("ark credentials not configured, artifact generation disabled")
	}

	orch := orchestrator.New(sessionStore, catalog, engine, resolver, generator, cfg.Fetch.Timeout)
	router := handler.NewRouter(orch, sessionStore, catalog)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("GTM agent backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
