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

	"github.com/joho/godotenv"

	"github.com/uptura/site/backend/internal/config"
	"github.com/uptura/site/backend/internal/handler"
	"github.com/uptura/site/backend/internal/middleware"
	"github.com/uptura/site/backend/internal/model/persona"
	"github.com/uptura/site/backend/internal/service/ai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	// A missing key is not fatal here; /api/chat reports it per request.
	var completer ai.Completer
	if cfg.AI.Configured() {
		completer, err = ai.NewCompleter(ctx, cfg.AI)
		if err != nil {
			log.Fatalf("failed to initialize %s completion provider: %v", cfg.AI.Provider, err)
		}
		log.Printf("%s completion provider initialized, model=%s", cfg.AI.Provider, cfg.AI.Model)
	} else {
		log.Printf("warning: no API key configured for provider %s, chat will answer with a configuration error", cfg.AI.Provider)
	}

	aiSvc, err := ai.NewService(completer, cfg.AI, personaStore)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	log.Printf("assistant persona=%s prompt=%s timeout=%s max_tokens=%d",
		aiSvc.Persona().ID, promptSource(cfg.AI), cfg.AI.Timeout, cfg.AI.MaxTokens)

	var limiter *middleware.RateLimiter
	if cfg.Site.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Site.RateLimit, cfg.Site.RateWindow)
		defer limiter.Stop()
		log.Printf("chat rate limit: %d requests per %s", cfg.Site.RateLimit, cfg.Site.RateWindow)
	}

	if cfg.Site.StaticDir != "" {
		if info, err := os.Stat(cfg.Site.StaticDir); err != nil || !info.IsDir() {
			log.Printf("warning: STATIC_DIR %q is not a directory, static site disabled", cfg.Site.StaticDir)
			cfg.Site.StaticDir = ""
		} else {
			log.Printf("serving static site from %s", cfg.Site.StaticDir)
		}
	}

	router := handler.NewRouter(aiSvc, cfg.Site, limiter)
	srv := newServer(cfg.Server.Addr, router, cfg.AI.Timeout)

	log.Printf("Uptura site backend listening on %s", srv.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func promptSource(cfg config.AIConfig) string {
	if cfg.SystemPrompt != "" {
		return "override"
	}
	return cfg.PromptVariant
}

const shutdownTimeout = 10 * time.Second

// newServer leaves room in WriteTimeout for a full upstream call.
// Hijacked WebSocket connections are not bound by it.
func newServer(addr string, h http.Handler, replyTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      replyTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// runServer serves until ctx ends, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return ignoreClosed(err)
	case <-ctx.Done():
	}

	log.Printf("shutdown requested, draining connections (up to %s)", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ignoreClosed(<-serveErr)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
