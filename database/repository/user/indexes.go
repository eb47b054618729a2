package userRepo

import (
	"context"
	"fmt"

	"hotelsa/database/repository/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// profileIndexes back GetByID, the duplicate-email check on sign-up and the
// push-token lookups of the confirmation worker. Emails are stored lower-cased.
var profileIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetName("profile_uid").SetUnique(true)},
	{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("profile_email").SetUnique(true)},
	{Keys: bson.D{{Key: "push_token", Value: 1}}, Options: options.Index().SetName("profile_push_token").SetSparse(true)},
}

func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := shared.WithTimeout(context.Background(), shared.IndexTimeout)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
