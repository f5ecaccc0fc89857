package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by the server,
// e.g. TASKKEEPER_DATABASE_DSN.
const EnvPrefix = "TASKKEEPER_"

// parseEnv overlays variables that are set; unset ones leave config untouched.
// Malformed values (e.g. a bad duration) panic like a broken JSON file does.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
