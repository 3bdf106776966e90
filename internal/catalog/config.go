package catalog

import (
	"fmt"
	"time"
)

type Config struct {
	Server struct {
		Port    int `koanf:"port"`
		Timeout struct {
			ReadHeader time.Duration `koanf:"readHeader"`
		} `koanf:"timeout"`
	} `koanf:"server"`

	API struct {
		Key string `koanf:"key"`
	} `koanf:"api"`

	Metrics struct {
		Enabled bool   `koanf:"enabled"`
		Token   string `koanf:"token"`
	} `koanf:"metrics"`

	RateLimit struct {
		WritePerMin int `koanf:"writePerMin"`
	} `koanf:"ratelimit"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func DefaultConfig() map[string]any {
	return map[string]any{
		"server.port":               3000,
		"server.timeout.readHeader": "5s",
		"api.key":                   "",
		"metrics.enabled":           false,
		"metrics.token":             "",
		"ratelimit.writePerMin":     0,
		"log.level":                 "info",
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("invalid read header timeout: %v", c.Server.Timeout.ReadHeader)
	}
	if c.API.Key == "" {
		return fmt.Errorf("api key is required")
	}
	if c.RateLimit.WritePerMin < 0 {
		return fmt.Errorf("invalid write rate limit: %d", c.RateLimit.WritePerMin)
	}
	return nil
}
