package app

import (
	"github.com/go-chi/oauth"

	"github.com/CreativVentures-hub/focus-group-ai/catalog"
	"github.com/CreativVentures-hub/focus-group-ai/config"
	"github.com/CreativVentures-hub/focus-group-ai/draft"
	"github.com/CreativVentures-hub/focus-group-ai/i18n"
	"github.com/CreativVentures-hub/focus-group-ai/webhook"
)

type App struct {
	config.Config
	*oauth.BearerServer

	Catalog *catalog.Catalog
	Locales *i18n.Table
	Drafts  *draft.Store
	Webhook *webhook.Client
}
