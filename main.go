package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/CreativVentures-hub/focus-group-ai/app"
	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/config"
	"github.com/CreativVentures-hub/focus-group-ai/draft"
	"github.com/CreativVentures-hub/focus-group-ai/httpx"
	"github.com/CreativVentures-hub/focus-group-ai/i18n"
	"github.com/CreativVentures-hub/focus-group-ai/log"
	"github.com/CreativVentures-hub/focus-group-ai/routes"
	"github.com/CreativVentures-hub/focus-group-ai/webhook"
)

func main() {
	// the env file must be in place before flag defaults read the environment
	dotenvErr := godotenv.Load()

	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if dotenvErr != nil {
		log.Debug("main.dotenv: no .env file loaded")
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("main.catalog:", err)
	}

	locales, err := i18n.Load()
	if err != nil {
		log.Fatal("main.i18n:", err)
	}

	verifier, err := httpx.CredentialsVerifier(cfg.UsersFile)
	if err != nil {
		log.Fatal("main.credentials:", err)
	}
	bearerServer := httpx.NewBearerServer(verifier, cfg)

	drafts := draft.NewStore(cat, cfg.DraftTTL)
	defer drafts.Close()

	app := app.App{
		Config:       cfg,
		BearerServer: bearerServer,
		Catalog:      cat,
		Locales:      locales,
		Drafts:       drafts,
		Webhook:      webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout, cfg.FireAndForget),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     handler,
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// webhook processing can hold a submit response open for minutes
		WriteTimeout: cfg.WebhookTimeout + 30*time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
