package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vineetGray/crudtodo/internal/model"
	"github.com/vineetGray/crudtodo/internal/repository"
)

// recentTodoLimit caps the recentTodos block on the user detail view.
const recentTodoLimit = 5

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrInvalidInput, id)
	}
	return oid, nil
}

type CreateUserInput struct {
	Name   string
	Email  string
	Phone  string
	Avatar string
	Bio    string
}

type UpdateUserInput struct {
	Name   *string
	Email  *string
	Phone  *string
	Avatar *string
	Bio    *string
}

// UserWithStats is a user joined with the reduced todo stats shown in the
// user list.
type UserWithStats struct {
	model.User
	Stats model.StatsSummary `json:"stats"`
}

type UserDetailStats struct {
	model.StatsSummary
	PriorityStats  model.PriorityStats `json:"priorityStats"`
	CompletionRate int                 `json:"completionRate"`
}

// UserDetail is the single-user view: full stats plus the most recent todos.
type UserDetail struct {
	model.User
	Stats       UserDetailStats `json:"stats"`
	RecentTodos []model.Todo    `json:"recentTodos"`
}

type UserService struct {
	users repository.UserRepository
	todos repository.TodoRepository
}

func NewUserService(users repository.UserRepository, todos repository.TodoRepository) *UserService {
	return &UserService{users: users, todos: todos}
}

func (s *UserService) List(ctx context.Context) ([]UserWithStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	now := time.Now()
	result := make([]UserWithStats, 0, len(users))
	for _, user := range users {
		todos, err := s.todos.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load todos for user %s: %w", user.ID.Hex(), err)
		}
		result = append(result, UserWithStats{
			User:  user,
			Stats: model.ComputeStats(todos, now).Summary(),
		})
	}
	return result, nil
}

func (s *UserService) Get(ctx context.Context, id string) (UserDetail, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return UserDetail{}, err
	}

	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserDetail{}, ErrNotFound
		}
		return UserDetail{}, fmt.Errorf("failed to get user: %w", err)
	}

	todos, err := s.todos.ListByUser(ctx, user.ID)
	if err != nil {
		return UserDetail{}, fmt.Errorf("failed to load todos: %w", err)
	}

	now := time.Now()
	stats := model.ComputeStats(todos, now)

	recent := todos
	if len(recent) > recentTodoLimit {
		recent = recent[:recentTodoLimit]
	}
	for i := range recent {
		recent[i].ComputeDerived(now)
	}

	return UserDetail{
		User: user,
		Stats: UserDetailStats{
			StatsSummary:   stats.Summary(),
			PriorityStats:  stats.PriorityStats,
			CompletionRate: stats.CompletionRate,
		},
		RecentTodos: recent,
	}, nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (model.User, error) {
	user := model.User{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Avatar: input.Avatar,
		Bio:    input.Bio,
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkEmailFree(ctx, user.Email, primitive.NilObjectID); err != nil {
		return model.User{}, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// The unique index is the backstop against a concurrent create
		// slipping past the pre-check.
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, fmt.Errorf("%w: user with this email already exists", ErrInvalidInput)
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.User{}, err
	}

	existing, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user for update: %w", err)
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Phone != nil {
		existing.Phone = *input.Phone
	}
	if input.Avatar != nil {
		existing.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		existing.Bio = *input.Bio
	}

	existing.Normalize()
	if err := existing.Validate(); err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Email != nil {
		if err := s.checkEmailFree(ctx, existing.Email, existing.ID); err != nil {
			return model.User{}, err
		}
	}

	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, fmt.Errorf("%w: user with this email already exists", ErrInvalidInput)
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// Delete removes the user and then every todo the user owns. The two steps
// are not transactional: a cascade failure is reported but not rolled back.
func (s *UserService) Delete(ctx context.Context, id string) (model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user for delete: %w", err)
	}

	if err := s.users.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to delete user: %w", err)
	}

	if _, err := s.todos.DeleteByUser(ctx, oid); err != nil {
		return model.User{}, fmt.Errorf("user deleted but cascade delete of todos failed: %w", err)
	}

	return user, nil
}

// checkEmailFree fails when another user already holds the email. The self
// id is excluded so updates that keep the same email pass.
func (s *UserService) checkEmailFree(ctx context.Context, email string, self primitive.ObjectID) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != self {
		return fmt.Errorf("%w: user with this email already exists", ErrInvalidInput)
	}
	return nil
}
