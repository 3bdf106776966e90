package configloader

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`
	API struct {
		Key string `koanf:"key"`
	} `koanf:"api"`
}

func (c *testConfig) Validate() error {
	if c.API.Key == "" {
		return errors.New("api key is required")
	}
	return nil
}

func defaults() map[string]any {
	return map[string]any{
		"server.port": 3000,
		"api.key":     "",
	}
}

func TestLoad_DefaultsAndValidation(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load[*testConfig]("catalog", defaults())
	require.ErrorContains(t, err, "api key is required")

	t.Setenv("CATALOG_API_KEY", "sekret")

	cfg, err := Load[*testConfig]("catalog", defaults())
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "sekret", cfg.API.Key)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("config.yaml", []byte("server:\n  port: 4000\napi:\n  key: from-yaml\n"), 0o644))
	require.NoError(t, os.WriteFile(".env", []byte("CATALOG_SERVER_PORT=5000\n"), 0o644))

	cfg, err := Load[*testConfig]("catalog", defaults())
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.Server.Port, ".env overrides config.yaml")
	require.Equal(t, "from-yaml", cfg.API.Key)

	t.Setenv("CATALOG_SERVER_PORT", "6000")

	cfg, err = Load[*testConfig]("catalog", defaults())
	require.NoError(t, err)
	require.Equal(t, 6000, cfg.Server.Port, "process env wins over .env")
}
