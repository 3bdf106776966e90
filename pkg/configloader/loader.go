// Package configloader layers configuration from defaults, an optional
// config.yaml, an optional .env file, and process environment variables
// (highest priority).
package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const configFile = "config.yaml"

type Validator interface {
	Validate() error
}

func Load[T Validator](serviceName string, defaults map[string]any) (T, error) {
	var cfg T
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("load %s: %w", configFile, err)
	}

	// Env vars look like CATALOG_SERVER_PORT and map to "server.port".
	envPrefix := strings.ToUpper(serviceName) + "_"
	envKey := func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix)))
		return strings.ReplaceAll(key, "_", ".")
	}

	if envFile, err := godotenv.Read(".env"); err == nil {
		m := make(map[string]any, len(envFile))
		for key, value := range envFile {
			if strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				m[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			return cfg, fmt.Errorf("load .env: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
