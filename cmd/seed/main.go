// Command seed replaces the product catalogue with the embedded product
// list and, when ADMIN_PASSWORD is set, replaces the admin credential.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/app"
	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/mail"
	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/service"
)

//go:embed products.json
var productsJSON []byte

func loadProducts() ([]model.Product, error) {
	var items []model.Product
	if err := json.Unmarshal(productsJSON, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := app.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, _, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("store init failed")
	}
	defer store.Close(context.Background())

	items, err := loadProducts()
	if err != nil {
		logger.WithError(err).Fatal("embedded product list is invalid")
	}
	n, err := service.NewCatalogService(store, logger).ReplaceProducts(ctx, items)
	if err != nil {
		logger.WithError(err).Fatal("seeding products failed")
	}
	logger.WithFields(logrus.Fields{"products": n}).Info("products added")

	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		auth := service.NewAuthService(cfg, store, mail.New(config.LoadMailConfig(), logger), logger)
		if err := auth.ReplaceAdminPassword(ctx, pw); err != nil {
			logger.WithError(err).Fatal("storing admin password failed")
		}
		logger.Info("admin password stored")
	}
}
