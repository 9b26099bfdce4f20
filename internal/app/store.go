// Package app holds the startup wiring shared by the server and seed
// binaries.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/database"
	"github.com/iliyamo/electramart-api/internal/handler"
	"github.com/iliyamo/electramart-api/internal/repository"
	"github.com/iliyamo/electramart-api/internal/repository/memstore"
	"github.com/iliyamo/electramart-api/internal/repository/mongostore"
)

// OpenStore connects the backend selected by STORE_DRIVER.  The returned
// pinger backs the /healthz check for that backend.
func OpenStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (*repository.Store, handler.Pinger, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql migrate: %w", err)
		}
		log.WithField("db", cfg.DBName).Info("mysql store ready")
		return repository.NewMySQLStore(db), db.PingContext, nil

	case config.DriverMongo:
		client, mdb, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		st, err := mongostore.New(ctx, client, mdb)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.WithField("db", cfg.MongoDB).Info("mongo store ready")
		return st, func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), func(context.Context) error { return nil }, nil
	}
}
