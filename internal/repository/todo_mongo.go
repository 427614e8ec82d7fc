package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vineetGray/crudtodo/internal/model"
)

type MongoTodoRepository struct {
	db *DB
}

func NewMongoTodo(db *DB) *MongoTodoRepository {
	return &MongoTodoRepository{db: db}
}

func (r *MongoTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	now := time.Now().UTC()
	todo.ID = primitive.NewObjectID()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	if _, err := r.db.todos().InsertOne(ctx, todo); err != nil {
		return model.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}
	return todo, nil
}

func (r *MongoTodoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Todo, error) {
	var todo model.Todo
	err := r.db.todos().FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.Todo{}, err
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

func (r *MongoTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	todo.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"title":       todo.Title,
		"description": todo.Description,
		"completed":   todo.Completed,
		"priority":    todo.Priority,
		"dueDate":     todo.DueDate,
		"tags":        todo.Tags,
		"updatedAt":   todo.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Todo
	err := r.db.todos().FindOneAndUpdate(ctx, bson.M{"_id": todo.ID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.Todo{}, err
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

func (r *MongoTodoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.db.todos().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoTodoRepository) List(ctx context.Context, params model.TodoListParams) ([]model.Todo, error) {
	opts := options.Find().SetSort(buildTodoSort(params))
	cursor, err := r.db.todos().Find(ctx, buildTodoFilter(params), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []model.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}
	return todos, nil
}

func (r *MongoTodoRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Todo, error) {
	return r.List(ctx, model.TodoListParams{UserID: userID})
}

func (r *MongoTodoRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.db.todos().DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos for user: %w", err)
	}
	return result.DeletedCount, nil
}

// buildTodoFilter compiles list params into a Mongo filter document. The
// user scope is always present; the remaining filters are conjunctive.
// Search matches the term as a case-insensitive literal substring of the
// title, the description, or any tag element.
func buildTodoFilter(params model.TodoListParams) bson.M {
	filter := bson.M{"user": params.UserID}

	if params.Completed != nil {
		filter["completed"] = *params.Completed
	}
	if params.Priority != nil {
		filter["priority"] = *params.Priority
	}
	if params.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"tags": re},
		}
	}
	return filter
}

func buildTodoSort(params model.TodoListParams) bson.D {
	field := params.SortBy
	if field == "" {
		field = "createdAt"
	}
	dir := -1
	if params.SortOrder == "asc" {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}}
}

var _ TodoRepository = (*MongoTodoRepository)(nil)
