// Package environ applies ENCEPHALON_* environment variables, optionally
// seeded from .env files, on top of the file settings.
package environ

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// Overrides returns a settings hook. Each existing dotenv file is loaded
// first; variables already in the environment keep their values.
func Overrides(dotenvPaths ...string) func(*domain.AppSettings) error {
	return func(settings *domain.AppSettings) error {
		if err := loadDotEnv(dotenvPaths); err != nil {
			return err
		}
		return Apply(settings)
	}
}

// Apply overwrites the fields whose variables are set.
func Apply(settings *domain.AppSettings) error {
	if err := env.Parse(settings); err != nil {
		return fmt.Errorf("parse environment: %w: %w", domain.ErrConfiguration, err)
	}
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("embedding provider %q: %w", settings.Embedding.Provider, domain.ErrConfiguration)
	}
	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("llm provider %q: %w", settings.LLM.Provider, domain.ErrConfiguration)
	}
	return nil
}

func loadDotEnv(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w: %w", path, domain.ErrConfiguration, err)
		}
	}
	return nil
}
