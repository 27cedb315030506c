package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mealpost/mealpost/pkg/config"
	"github.com/mealpost/mealpost/pkg/core"
	"github.com/mealpost/mealpost/pkg/imagegen"
	"github.com/mealpost/mealpost/pkg/llm"
	"github.com/mealpost/mealpost/pkg/publish"
	"github.com/mealpost/mealpost/pkg/recipetool"
)

// BuildClients wires the external collaborators for one run from config.
// An unconfigured vendor degrades to the offline client, so a partially
// configured environment still produces a complete run via fallbacks.
func BuildClients(cfg *config.Config, log *zerolog.Logger) core.Clients {
	clients := core.Clients{
		Recipe:  textInvoker(cfg, cfg.Roles.Recipe, log),
		Content: textInvoker(cfg, cfg.Roles.Content, log),
		Audit:   textInvoker(cfg, cfg.Roles.Audit, log),
	}

	if vendor, ok := cfg.Vendors[cfg.Roles.Images]; ok && vendor.APIKey != "" && !cfg.Offline {
		gen, err := imagegen.NewOpenAIGenerator(cfg.Roles.Images, vendor)
		if err != nil {
			log.Warn().Err(err).Msg("Image vendor misconfigured, images degrade to placeholders")
		} else {
			clients.Images = gen
		}
	}

	if cfg.PublishURL != "" && !cfg.Offline {
		clients.Publisher = publish.NewHTTPPublisher(cfg.PublishURL, nil)
	} else {
		clients.Publisher = publish.MockPublisher{}
	}

	if cfg.RecipeToolURL != "" && !cfg.Offline {
		clients.RecipeTool = recipetool.NewHTTPTool(cfg.RecipeToolURL, nil)
	}

	if cfg.ImageDir != "" {
		clients.ImageStore = imagegen.NewStore(afero.NewOsFs(), cfg.ImageDir)
	}

	return clients
}

func textInvoker(cfg *config.Config, role string, log *zerolog.Logger) core.Invoker {
	vendor, ok := cfg.Vendors[role]
	if cfg.Offline || !ok || vendor.APIKey == "" {
		return llm.NewInvoker(llm.OfflineClient{}, cfg.RequestTimeout, 1, 0)
	}
	client, err := llm.NewOpenAIClient(role, vendor)
	if err != nil {
		log.Warn().Err(err).Str("vendor", role).Msg("Vendor misconfigured, using offline client")
		return llm.NewInvoker(llm.OfflineClient{}, cfg.RequestTimeout, 1, 0)
	}
	return llm.NewInvoker(client, cfg.RequestTimeout, cfg.RetryAttempts, cfg.RetryDelay)
}
