package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vineetGray/crudtodo/internal/model"
)

type TodoRepository interface {
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// List returns the filtered, ordered todos for one user per params.
	List(ctx context.Context, params model.TodoListParams) ([]model.Todo, error)
	// ListByUser returns the user's complete todo set, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Todo, error)
	// DeleteByUser removes every todo owned by the user (cascade delete).
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
