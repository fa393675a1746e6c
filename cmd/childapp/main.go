// childapp is a demo platform application that consumes hub handoffs. It
// accepts a session credential from the sso_token URL parameter, persists
// it locally, and sends unauthenticated visitors back to the hub.
package main

import (
	"errors"
	"flag"
	"fmt"
	"html"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/cdah-platform/access-hub/pkg/client"
	"github.com/cdah-platform/access-hub/pkg/session"
	"github.com/cdah-platform/access-hub/pkg/token"
)

type appConfig struct {
	listenAddr  string
	appName     string
	hubURL      string
	tokenIssuer string
	redisAddr   string
}

func main() {
	cfg := parseFlags()

	secret := os.Getenv("HUB_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("missing required env var 'HUB_TOKEN_SECRET'")
	}

	codec := token.NewHS256Codec([]byte(secret), cfg.tokenIssuer)
	// child applications trust the shared secret; no subject resolver here
	verifier := token.NewVerifier(codec, nil)

	var store session.Store
	if cfg.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		store = session.NewRedisStore(rdb, cfg.appName)
		log.Printf("using redis session store at %s", cfg.redisAddr)
	} else {
		store = session.NewMemoryStore()
	}

	c := client.New(verifier, store)

	r := http.NewServeMux()
	r.HandleFunc("/", home(c, cfg))
	r.HandleFunc("/logout", logout(c, cfg))

	log.Printf("starting %s on %s", cfg.appName, cfg.listenAddr)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- http.ListenAndServe(cfg.listenAddr, r)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("server error: %v", err)
	case sig := <-sigChan:
		log.Printf("received signal %v, shutting down", sig)
	}
}

func parseFlags() appConfig {
	var cfg appConfig
	flag.StringVar(&cfg.listenAddr, "listen", "127.0.0.1:9090", "Listen address")
	flag.StringVar(&cfg.appName, "name", "childapp", "Application name (session namespace)")
	flag.StringVar(&cfg.hubURL, "hub", "http://localhost:8080", "Hub base URL for sign-in redirects")
	flag.StringVar(&cfg.tokenIssuer, "issuer", "cdah-hub", "Expected credential issuer")
	flag.StringVar(&cfg.redisAddr, "redis", "", "Redis address for the session store (in-memory if empty)")
	flag.Parse()
	return cfg
}

func home(c *client.Client, cfg appConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, clean, err := c.Resume(r.Context(), r.URL)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Printf("session rejected: %v", err)
			}
			http.Redirect(w, r, cfg.hubURL, http.StatusSeeOther)
			return
		}

		// keep the credential out of the address bar and history
		if clean.String() != r.URL.String() {
			http.Redirect(w, r, clean.String(), http.StatusSeeOther)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w,
			"<h1>%s</h1><p>Signed in as %s (%s)</p><p>Session expires %s</p><p><a href=\"/logout\">Sign out</a></p>",
			html.EscapeString(cfg.appName),
			html.EscapeString(sess.Name),
			html.EscapeString(sess.Email),
			sess.TokenExpiresAt.Format("2006-01-02 15:04 MST"),
		)
	}
}

func logout(c *client.Client, cfg appConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// local sign-out only; other applications keep their sessions
		if err := c.ClearSession(r.Context()); err != nil && !errors.Is(err, session.ErrNoSession) {
			log.Printf("clear session: %v", err)
		}
		http.Redirect(w, r, cfg.hubURL, http.StatusSeeOther)
	}
}
