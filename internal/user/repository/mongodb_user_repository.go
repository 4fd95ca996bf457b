// Package repository implements user persistence on MongoDB.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/iamRazzakk/storefront-api/internal/database"
	"github.com/iamRazzakk/storefront-api/internal/user/domain"
)

// CollectionName is the MongoDB collection holding users.
const CollectionName = "users"

// Indexes returns the indexes the users collection needs. The unique email
// index settles concurrent sign ups for the same address.
func Indexes() database.IndexSpec {
	return database.IndexSpec{
		Collection: CollectionName,
		Models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_1"),
			},
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("createdAt_-1"),
			},
		},
	}
}

// MongoUserRepository stores users in a MongoDB collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a repository on db's users collection.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(CollectionName)}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func byID(id bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// Create inserts user, assigning its id and timestamps.
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	ts := now()
	user.CreatedAt = ts
	user.UpdatedAt = ts

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return database.TranslateError(err, nil)
	}
	return nil
}

// GetByID returns the user with id or domain.ErrUserNotFound.
func (r *MongoUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, byID(id))
}

// GetByEmail returns the user registered with email or domain.ErrUserNotFound.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, database.TranslateError(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// ExistsByEmail reports whether an account already uses email.
func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: email}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

// List returns every user, newest first.
func (r *MongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Update applies patch to the user with id and returns the updated document.
func (r *MongoUserRepository) Update(ctx context.Context, id bson.ObjectID, patch domain.UserPatch) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: SetDocument(patch, now())}})
}

// RecordLoginFailure increments the failed sign in counter of the user with id.
func (r *MongoUserRepository) RecordLoginFailure(ctx context.Context, id bson.ObjectID) error {
	_, err := r.findOneAndUpdate(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "loginAttempts", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now()}}},
	})
	return err
}

// RecordLoginSuccess resets the failed sign in counter and stamps lastLogin.
func (r *MongoUserRepository) RecordLoginSuccess(ctx context.Context, id bson.ObjectID, at time.Time) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "loginAttempts", Value: 0},
		{Key: "lastLogin", Value: at.UTC().Truncate(time.Millisecond)},
		{Key: "updatedAt", Value: now()},
	}}})
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update bson.D) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	if err := r.coll.FindOneAndUpdate(ctx, byID(id), update, opts).Decode(&user); err != nil {
		return nil, database.TranslateError(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// Delete removes the user with id.
func (r *MongoUserRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetDocument builds the $set document for patch, always bumping updatedAt.
func SetDocument(patch domain.UserPatch, updatedAt time.Time) bson.D {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *patch.Age})
	}
	if patch.Contact != nil {
		set = append(set, bson.E{Key: "contact", Value: *patch.Contact})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *patch.Role})
	}
	return append(set, bson.E{Key: "updatedAt", Value: updatedAt})
}
