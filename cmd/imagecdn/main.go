// Command imagecdn starts the HTTP image content-delivery service: it
// loads CdnConfig, dials the external cache, wires the route surface, and
// listens on 0.0.0.0:8080.
package main

import (
	"imagecdn/internal/api"
	"imagecdn/internal/applog"
	"imagecdn/internal/cdn"
	"imagecdn/internal/config"
	"imagecdn/internal/firewall"
	"imagecdn/internal/signature"
	"imagecdn/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Fatal("could not load config: %v", err)
	}

	applog.Banner(version, cfg.Firewall.Enabled())

	// Resolves (and, in release mode, fatally enforces) CDN_SECRET up front
	// rather than leaving the check to whenever the first /health request
	// happens to arrive.
	firewall.Secret()

	store := storage.New(cfg.StoragePath())
	connected := cdn.New(store).Connect()

	verifier, err := signature.Load()
	if err != nil {
		applog.Fatal("could not load signature public key: %v", err)
	}

	router := api.NewRouter(api.Deps{
		Cdn:      connected,
		Firewall: cfg.Firewall,
		Verifier: verifier,
	})

	if err := router.Run("0.0.0.0:8080"); err != nil {
		applog.Fatal("failed to bind 0.0.0.0:8080: %v", err)
	}
}
