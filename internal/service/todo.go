package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vineetGray/crudtodo/internal/model"
	"github.com/vineetGray/crudtodo/internal/repository"
)

// parseDueDate parses an RFC3339 string into *time.Time.
// Returns nil for nil or empty input, so an empty string clears the due date.
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate format, expected RFC3339", ErrInvalidInput)
	}
	return &t, nil
}

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *string // RFC3339
	Tags        []string
	User        string
}

type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string // RFC3339; empty string clears the due date
	Tags        *[]string
}

type ListTodosInput struct {
	UserID    string
	Completed *bool
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
}

type TodoService struct {
	todos repository.TodoRepository
	users repository.UserRepository
}

func NewTodoService(todos repository.TodoRepository, users repository.UserRepository) *TodoService {
	return &TodoService{todos: todos, users: users}
}

func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (model.Todo, error) {
	if input.User == "" {
		return model.Todo{}, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	userID, err := parseObjectID(input.User)
	if err != nil {
		return model.Todo{}, err
	}

	// A todo may only be bound to an existing user.
	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, fmt.Errorf("%w: user %s does not exist", ErrInvalidInput, input.User)
		}
		return model.Todo{}, fmt.Errorf("failed to check todo owner: %w", err)
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    model.Priority(input.Priority),
		DueDate:     dueDate,
		Tags:        input.Tags,
		UserID:      userID,
	}
	todo.Normalize()
	if err := todo.Validate(); err != nil {
		return model.Todo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.todos.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	created.User = ref(owner)
	created.ComputeDerived(time.Now())
	return created, nil
}

func (s *TodoService) GetByID(ctx context.Context, id string) (model.Todo, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Todo{}, err
	}

	todo, err := s.todos.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return s.decorate(ctx, todo)
}

func (s *TodoService) List(ctx context.Context, input ListTodosInput) ([]model.Todo, error) {
	userID, err := parseObjectID(input.UserID)
	if err != nil {
		return nil, err
	}

	params := model.TodoListParams{
		UserID:    userID,
		Completed: input.Completed,
		Search:    input.Search,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	}
	if input.Priority != "" {
		p := model.Priority(input.Priority)
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: priority must be low, medium, or high", ErrInvalidInput)
		}
		params.Priority = &p
	}
	if input.SortBy != "" && !model.SortableFields[input.SortBy] {
		return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, input.SortBy)
	}

	todos, err := s.todos.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	// One owner for the whole list; a missing owner (user deleted) just
	// leaves the projection off.
	var ownerRef *model.UserRef
	if owner, err := s.users.GetByID(ctx, userID); err == nil {
		ownerRef = ref(owner)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to load todo owner: %w", err)
	}

	now := time.Now()
	for i := range todos {
		todos[i].User = ownerRef
		todos[i].ComputeDerived(now)
	}
	return todos, nil
}

func (s *TodoService) Update(ctx context.Context, id string, input UpdateTodoInput) (model.Todo, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Todo{}, err
	}

	existing, err := s.todos.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Completed != nil {
		existing.Completed = *input.Completed
	}
	if input.Priority != nil {
		existing.Priority = model.Priority(*input.Priority)
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(input.DueDate)
		if err != nil {
			return model.Todo{}, err
		}
		existing.DueDate = dueDate
	}
	if input.Tags != nil {
		existing.Tags = *input.Tags
	}

	existing.Normalize()
	if err := existing.Validate(); err != nil {
		return model.Todo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.todos.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return s.decorate(ctx, updated)
}

func (s *TodoService) Delete(ctx context.Context, id string) (model.Todo, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Todo{}, err
	}

	todo, err := s.todos.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for delete: %w", err)
	}

	if err := s.todos.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to delete todo: %w", err)
	}

	todo.ComputeDerived(time.Now())
	return todo, nil
}

// Toggle flips the completed flag. Plain read-modify-write: two concurrent
// toggles on the same todo race last-write-wins.
func (s *TodoService) Toggle(ctx context.Context, id string) (model.Todo, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Todo{}, err
	}

	existing, err := s.todos.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for toggle: %w", err)
	}

	existing.Completed = !existing.Completed

	updated, err := s.todos.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}
	return s.decorate(ctx, updated)
}

// Stats aggregates the user's complete todo set. An unknown user id simply
// yields zero counts; the todos of a deleted user are gone with it.
func (s *TodoService) Stats(ctx context.Context, userID string) (model.TodoStats, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return model.TodoStats{}, err
	}

	todos, err := s.todos.ListByUser(ctx, oid)
	if err != nil {
		return model.TodoStats{}, fmt.Errorf("failed to load todos for stats: %w", err)
	}
	return model.ComputeStats(todos, time.Now()), nil
}

// decorate attaches the owner projection and the read-time derived fields.
func (s *TodoService) decorate(ctx context.Context, todo model.Todo) (model.Todo, error) {
	owner, err := s.users.GetByID(ctx, todo.UserID)
	if err == nil {
		todo.User = ref(owner)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return model.Todo{}, fmt.Errorf("failed to load todo owner: %w", err)
	}
	todo.ComputeDerived(time.Now())
	return todo, nil
}

func ref(u model.User) *model.UserRef {
	r := u.Ref()
	return &r
}
