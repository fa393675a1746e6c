// The hub is the access front door for the platform: it signs users in,
// takes access requests, and hands sessions off to platform applications
// through tokenized URLs.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cdah-platform/access-hub/internal/api"
	"github.com/cdah-platform/access-hub/internal/catalog"
	"github.com/cdah-platform/access-hub/internal/config"
	"github.com/cdah-platform/access-hub/internal/obs"
	"github.com/cdah-platform/access-hub/internal/service"
	"github.com/cdah-platform/access-hub/internal/store"
	"github.com/cdah-platform/access-hub/pkg/token"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()

	db, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Storage.SeedPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := store.SeedFromFile(ctx, db.Users(), cfg.Storage.SeedPath, service.PasswordModeProduction.Cost()); err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
		cancel()
	}

	codec := token.NewHS256Codec([]byte(cfg.Token.Secret), cfg.Token.Issuer)
	issuer := token.NewIssuer(codec, token.WithTTL(cfg.Token.TTL))
	verifier := token.NewVerifier(codec, service.NewResolver(db.Users()))

	svc := service.New(
		db.Users(),
		db.Requests(),
		issuer,
		verifier,
		service.PasswordModeProduction,
	)

	cat, err := catalog.New(cfg.Catalog.Dir)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	if cfg.Catalog.Watch {
		if err := cat.Watch(); err != nil {
			log.Fatalf("catalog watch: %v", err)
		}
	}

	cookieSecure := cfg.Env != "development"
	a := api.New(svc, cat, cookieSecure)

	srv := &http.Server{
		Addr:              cfg.Listen.Addr(),
		Handler:           a.Router(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("starting access hub on %s (env=%s)", srv.Addr, cfg.Env)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("stopped")
}
