package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ogdeig/diamond-ave-storefront/api/routes"
	"github.com/ogdeig/diamond-ave-storefront/internal/cart"
	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
	"github.com/ogdeig/diamond-ave-storefront/internal/orders"
	"github.com/ogdeig/diamond-ave-storefront/internal/quickorder"
	"github.com/ogdeig/diamond-ave-storefront/internal/shopapi"
	"github.com/ogdeig/diamond-ave-storefront/pkg/config"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
	"github.com/ogdeig/diamond-ave-storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	shopClient := shopapi.New(cfg.Shop)
	store := catalog.NewStore(shopClient, logg, storefrontMetrics)
	ledger := cart.NewLedger(store, logg, storefrontMetrics)
	widget := quickorder.NewWidget(store, ledger)

	submitter, err := orders.NewSubmitter(shopClient, ledger, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create order submitter", err)
		os.Exit(1)
	}

	source := store.Load(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"catalog_source": source,
		"products":       store.Len(),
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, ledger, widget, submitter, shopClient, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
