package presentation

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controla el envoltorio de respuestas. Inmutable tras el arranque.
type Config struct {
	Enabled     bool   `env:"SHAREDKERNEL_PRESENTATION_API_RESPONSE_ENABLED" envDefault:"true"`
	Version     string `env:"SHAREDKERNEL_PRESENTATION_META_DEFAULTS_VERSION"`
	Environment string `env:"SHAREDKERNEL_PRESENTATION_META_DEFAULTS_ENVIRONMENT"`
}

func DefaultConfig() Config {
	return Config{Enabled: true}
}

// LoadConfig lee la configuración de presentación del entorno.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("presentation config: %w", err)
	}
	return cfg, nil
}
