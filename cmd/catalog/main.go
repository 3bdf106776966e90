package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ProductStore/internal/catalog"
	"ProductStore/pkg/configloader"
	"ProductStore/pkg/kit"
)

const service = "catalog"

func main() {
	cfg, err := configloader.Load[*catalog.Config](service, catalog.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	s := &catalog.Server{
		Store:            catalog.NewMemStore(),
		Log:              log,
		APIKey:           cfg.API.Key,
		WriteLimitPerMin: cfg.RateLimit.WritePerMin,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := kit.RunHTTPServer(addr, h, cfg.Server.Timeout.ReadHeader, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
