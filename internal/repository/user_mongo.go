package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vineetGray/crudtodo/internal/model"
)

type MongoUserRepository struct {
	db *DB
}

func NewMongoUser(db *DB) *MongoUserRepository {
	return &MongoUserRepository{db: db}
}

func (r *MongoUserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.users().InsertOne(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var user model.User
	err := r.db.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.db.users().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	user.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"avatar":    user.Avatar,
		"bio":       user.Bio,
		"updatedAt": user.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.User
	err := r.db.users().FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

var _ UserRepository = (*MongoUserRepository)(nil)
