package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	openrouterx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/pkg/openrouter"
)

// Config carries the default model settings plus optional per-agent
// overrides. Temperatures below zero mean "use the default".
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
	RequestsPerSecond  float64       `envconfig:"REQUESTS_PER_SECOND" split_words:"true" default:"5"`
	Burst              int           `envconfig:"BURST" split_words:"true" default:"1"`

	SupervisorModel       string  `envconfig:"SUPERVISOR_MODEL" split_words:"true"`
	CatalogModel          string  `envconfig:"CATALOG_MODEL" split_words:"true"`
	OrderModel            string  `envconfig:"ORDER_MODEL" split_words:"true"`
	DatabaseModel         string  `envconfig:"DATABASE_MODEL" split_words:"true"`
	SupervisorTemperature float32 `envconfig:"SUPERVISOR_TEMPERATURE" split_words:"true" default:"-1"`
	CatalogTemperature    float32 `envconfig:"CATALOG_TEMPERATURE" split_words:"true" default:"-1"`
	OrderTemperature      float32 `envconfig:"ORDER_TEMPERATURE" split_words:"true" default:"-1"`
	DatabaseTemperature   float32 `envconfig:"DATABASE_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, temperature float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if temperature >= 0 {
			temp = temperature
		}
	}

	switch agentType {
	case contractx.AgentTypeSupervisor:
		override(c.SupervisorModel, c.SupervisorTemperature)
	case contractx.AgentTypeCatalog:
		override(c.CatalogModel, c.CatalogTemperature)
	case contractx.AgentTypeOrder:
		override(c.OrderModel, c.OrderTemperature)
	case contractx.AgentTypeDatabase:
		override(c.DatabaseModel, c.DatabaseTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
		RequestsPerSecond:  c.RequestsPerSecond,
		Burst:              c.Burst,
	}
}
