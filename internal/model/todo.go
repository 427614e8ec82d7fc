package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type TodoStatus string

const (
	StatusCompleted TodoStatus = "completed"
	StatusOverdue   TodoStatus = "overdue"
	StatusPending   TodoStatus = "pending"
)

type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	Priority    Priority           `bson:"priority" json:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	UserID      primitive.ObjectID `bson:"user" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived fields. Never stored: they depend on wall-clock time and are
	// recomputed at the serialization boundary on every read.
	Status       TodoStatus `bson:"-" json:"status,omitempty"`
	DaysUntilDue *int       `bson:"-" json:"daysUntilDue,omitempty"`
	User         *UserRef   `bson:"-" json:"user,omitempty"`
}

// DeriveStatus reports exactly one of completed/overdue/pending.
func (t Todo) DeriveStatus(now time.Time) TodoStatus {
	if t.Completed {
		return StatusCompleted
	}
	if t.DueDate != nil && t.DueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}

// DeriveDaysUntilDue returns the due date distance in whole days rounded up,
// or nil when no due date is set.
func (t Todo) DeriveDaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	days := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
	return &days
}

// ComputeDerived fills the read-time fields in place.
func (t *Todo) ComputeDerived(now time.Time) {
	t.Status = t.DeriveStatus(now)
	t.DaysUntilDue = t.DeriveDaysUntilDue(now)
}

// Normalize trims the title, description, and every tag.
// Must run before Validate.
func (t *Todo) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	for i, tag := range t.Tags {
		t.Tags[i] = strings.TrimSpace(tag)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

func (t Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len([]rune(t.Title)) > 100 {
		return fmt.Errorf("title cannot be more than 100 characters")
	}
	if len([]rune(t.Description)) > 500 {
		return fmt.Errorf("description cannot be more than 500 characters")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("priority must be low, medium, or high")
	}
	if t.UserID.IsZero() {
		return fmt.Errorf("user is required")
	}
	return nil
}

// SortableFields enumerates the todo fields a list request may sort by.
var SortableFields = map[string]bool{
	"title":     true,
	"priority":  true,
	"completed": true,
	"dueDate":   true,
	"createdAt": true,
	"updatedAt": true,
}

// TodoListParams is the recognized filter and sort configuration for a
// single user's todo listing. All filters are conjunctive.
type TodoListParams struct {
	UserID    primitive.ObjectID
	Completed *bool
	Priority  *Priority
	Search    string
	SortBy    string // defaults to createdAt
	SortOrder string // "asc" or "desc", defaults to desc
}
