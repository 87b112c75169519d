package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/pkg/idx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type accountsRepo struct {
	c *mongo.Collection
}

var clearOTP = bson.D{{Key: "otp", Value: ""}, {Key: "otp_expiry", Value: ""}}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.c.InsertOne(ctx, toDoc(a))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetAccountByID matches string ids written by this service and ObjectId ids
// of documents carried over from the original collection.
func (r *accountsRepo) GetAccountByID(ctx context.Context, id idx.ID) (domain.Account, error) {
	if oid, err := primitive.ObjectIDFromHex(id.String()); err == nil {
		return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *accountsRepo) findOne(ctx context.Context, filter bson.D) (domain.Account, error) {
	var doc accountDoc
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(doc), nil
}

func (r *accountsRepo) SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	res, err := r.c.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}, {Key: "verified", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "otp", Value: code},
			{Key: "otp_expiry", Value: expiresAt.UTC()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) ConsumeOTP(ctx context.Context, email, code string, now time.Time) error {
	res, err := r.c.UpdateOne(ctx,
		bson.D{
			{Key: "email", Value: email},
			{Key: "verified", Value: false},
			{Key: "otp", Value: code},
			{Key: "otp_expiry", Value: bson.D{{Key: "$gt", Value: now.UTC()}}},
		},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}},
			{Key: "$unset", Value: clearOTP},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) PurgeExpiredOTPs(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.c.UpdateMany(ctx,
		bson.D{{Key: "otp_expiry", Value: bson.D{{Key: "$lt", Value: before.UTC()}}}},
		bson.D{{Key: "$unset", Value: clearOTP}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
