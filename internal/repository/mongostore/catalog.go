package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
)

type productDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	model.Product `bson:",inline"`
}

// Products is the Mongo ProductStore.
type Products struct{ coll *mongo.Collection }

func (s *Products) Create(ctx context.Context, p *model.Product) error {
	doc := productDoc{ID: bson.NewObjectID(), Product: *p}
	doc.CreatedAt = time.Now().UTC()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrProductExists
		}
		return err
	}
	*p = doc.Product
	p.ID = doc.ID.Hex()
	return nil
}

func (s *Products) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	p := doc.Product
	p.ID = doc.ID.Hex()
	return &p, nil
}

func (s *Products) List(ctx context.Context) ([]*model.Product, error) {
	return s.find(ctx, bson.M{})
}

func (s *Products) ListByType(ctx context.Context, productType string) ([]*model.Product, error) {
	return s.find(ctx, bson.M{"type": productType})
}

func (s *Products) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Products) find(ctx context.Context, filter bson.M) ([]*model.Product, error) {
	cur, err := s.coll.Find(ctx, filter, byCreation())
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.Product, 0, len(docs))
	for _, d := range docs {
		p := d.Product
		p.ID = d.ID.Hex()
		out = append(out, &p)
	}
	return out, nil
}

type adminDoc struct {
	ID                    bson.ObjectID `bson:"_id,omitempty"`
	model.AdminCredential `bson:",inline"`
}

// Admins is the Mongo AdminStore.
type Admins struct{ coll *mongo.Collection }

func (s *Admins) Create(ctx context.Context, passwordHash string) error {
	_, err := s.coll.InsertOne(ctx, adminDoc{
		ID:              bson.NewObjectID(),
		AdminCredential: model.AdminCredential{PasswordHash: passwordHash, CreatedAt: time.Now().UTC()},
	})
	return err
}

func (s *Admins) ListHashes(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []adminDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.PasswordHash)
	}
	return out, nil
}

func (s *Admins) DeleteAll(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{})
	return err
}
