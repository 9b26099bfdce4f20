package mongostore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iliyamo/electramart-api/internal/model"
)

type userDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	model.User `bson:",inline"`
}

func (d *userDoc) toModel() *model.User {
	u := d.User
	u.ID = d.ID.Hex()
	return &u
}

// Users is the Mongo UserStore.
type Users struct{ coll *mongo.Collection }

func (s *Users) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	doc := userDoc{ID: bson.NewObjectID(), User: *u}
	doc.Email = strings.ToLower(strings.TrimSpace(u.Email))
	doc.CreatedAt, doc.UpdatedAt = now, now
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return userConflict(err)
	}
	*u = *doc.toModel()
	return nil
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *Users) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *Users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Users) List(ctx context.Context) ([]*model.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, byCreation())
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toModel())
	}
	return out, nil
}

func (s *Users) UpdatePassword(ctx context.Context, email, hash string) error {
	return matchedOne(s.coll.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()}}))
}

func (s *Users) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	set := bson.M{
		"username":  upd.Username,
		"email":     strings.ToLower(strings.TrimSpace(upd.Email)),
		"phone":     upd.Phone,
		"address":   upd.Address,
		"updatedAt": time.Now().UTC(),
	}
	if upd.Password != "" {
		set["password"] = upd.Password
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return userConflict(err)
	}
	return matchedOne(res, nil)
}

func (s *Users) SetProfilePic(ctx context.Context, id, url string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return matchedOne(s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"profilePic": url, "updatedAt": time.Now().UTC()}}))
}
