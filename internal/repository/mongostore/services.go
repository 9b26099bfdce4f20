package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
)

type queryDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	model.Query `bson:",inline"`
}

// Queries is the Mongo QueryStore.
type Queries struct{ coll *mongo.Collection }

func (s *Queries) Create(ctx context.Context, q *model.Query) error {
	doc := queryDoc{ID: bson.NewObjectID(), Query: *q}
	doc.CreatedAt = time.Now().UTC()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*q = doc.Query
	q.ID = doc.ID.Hex()
	return nil
}

func (s *Queries) List(ctx context.Context) ([]*model.Query, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, byCreation())
	if err != nil {
		return nil, err
	}
	var docs []queryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.Query, 0, len(docs))
	for _, d := range docs {
		q := d.Query
		q.ID = d.ID.Hex()
		out = append(out, &q)
	}
	return out, nil
}

type transactionDoc struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	model.Transaction `bson:",inline"`
}

// Transactions is the Mongo TransactionStore.
type Transactions struct{ coll *mongo.Collection }

func (s *Transactions) Create(ctx context.Context, t *model.Transaction) error {
	doc := transactionDoc{ID: bson.NewObjectID(), Transaction: *t}
	doc.CreatedAt = time.Now().UTC()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*t = doc.Transaction
	t.ID = doc.ID.Hex()
	return nil
}

func (s *Transactions) List(ctx context.Context) ([]*model.Transaction, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, byCreation())
	if err != nil {
		return nil, err
	}
	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.Transaction, 0, len(docs))
	for _, d := range docs {
		t := d.Transaction
		t.ID = d.ID.Hex()
		out = append(out, &t)
	}
	return out, nil
}

type resetDoc struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	model.PasswordReset `bson:",inline"`
}

// Resets is the Mongo ResetStore.
type Resets struct{ coll *mongo.Collection }

func (s *Resets) Create(ctx context.Context, r *model.PasswordReset) error {
	doc := resetDoc{ID: bson.NewObjectID(), PasswordReset: *r}
	doc.CreatedAt = time.Now().UTC()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	*r = doc.PasswordReset
	r.ID = doc.ID.Hex()
	return nil
}

func (s *Resets) GetByHash(ctx context.Context, tokenHash string) (*model.PasswordReset, error) {
	var doc resetDoc
	if err := s.coll.FindOne(ctx, bson.M{"tokenHash": tokenHash}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	r := doc.PasswordReset
	r.ID = doc.ID.Hex()
	return &r, nil
}

func (s *Resets) MarkUsed(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return matchedOne(s.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "usedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"usedAt": time.Now().UTC()}}))
}

func (s *Resets) InvalidateForUser(ctx context.Context, userID string) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "usedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"usedAt": time.Now().UTC()}})
	return err
}

func (s *Resets) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": now.UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
