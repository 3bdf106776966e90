package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	var c Config
	c.Server.Port = 3000
	c.Server.Timeout.ReadHeader = 5 * time.Second
	c.API.Key = "sekret"
	return &c
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	c := validConfig()
	c.Server.Port = 0
	require.ErrorContains(t, c.Validate(), "port")

	c = validConfig()
	c.Server.Timeout.ReadHeader = 0
	require.ErrorContains(t, c.Validate(), "timeout")

	c = validConfig()
	c.API.Key = ""
	require.ErrorContains(t, c.Validate(), "api key")

	c = validConfig()
	c.RateLimit.WritePerMin = -1
	require.ErrorContains(t, c.Validate(), "rate limit")
}
