// Package mongostore implements the repository interfaces on MongoDB.
// Unique indexes are created at start-up and duplicate-key errors are the
// only uniqueness signal.
package mongostore

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/iliyamo/electramart-api/internal/repository"
)

const (
	usersCollection        = "users"
	adminsCollection       = "admins"
	productsCollection     = "products"
	queriesCollection      = "queries"
	transactionsCollection = "transactions"
	resetsCollection       = "password_resets"

	usernameIndex    = "uq_users_username"
	emailIndex       = "uq_users_email"
	productnameIndex = "uq_products_productname"
)

// New creates the indexes and returns a Store backed by db.  client is
// disconnected by Store.Close.
func New(ctx context.Context, client *mongo.Client, db *mongo.Database) (*repository.Store, error) {
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return &repository.Store{
		Users:        &Users{coll: db.Collection(usersCollection)},
		Admins:       &Admins{coll: db.Collection(adminsCollection)},
		Products:     &Products{coll: db.Collection(productsCollection)},
		Queries:      &Queries{coll: db.Collection(queriesCollection)},
		Transactions: &Transactions{coll: db.Collection(transactionsCollection)},
		Resets:       &Resets{coll: db.Collection(resetsCollection)},
		Close:        client.Disconnect,
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes.  CreateMany is
// idempotent for identical definitions.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usernameIndex)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "productname", Value: 1}}, Options: options.Index().SetUnique(true).SetName(productnameIndex)},
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		resetsCollection: {
			{Keys: bson.D{{Key: "tokenHash", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// userConflict maps a duplicate-key error on users to the repository
// sentinels using the violated index name.
func userConflict(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, usernameIndex):
		return repository.ErrUsernameExists
	case strings.Contains(msg, emailIndex):
		return repository.ErrEmailExists
	}
	return repository.ErrConflict
}

// notFound converts mongo.ErrNoDocuments into repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

// objectID parses a hex id; an unparsable id can match nothing.
func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, repository.ErrNotFound
	}
	return oid, nil
}

// matchedOne converts an update that matched nothing into ErrNotFound.
func matchedOne(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func byCreation() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}
