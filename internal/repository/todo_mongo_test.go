package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vineetGray/crudtodo/internal/model"
)

func boolPtr(b bool) *bool                         { return &b }
func priorityPtr(p model.Priority) *model.Priority { return &p }

func TestBuildTodoFilter_UserScopeAlwaysPresent(t *testing.T) {
	userID := primitive.NewObjectID()
	filter := buildTodoFilter(model.TodoListParams{UserID: userID})

	if got := filter["user"]; got != userID {
		t.Errorf("expected user scope %s, got %v", userID.Hex(), got)
	}
	if len(filter) != 1 {
		t.Errorf("expected only the user scope, got %v", filter)
	}
}

func TestBuildTodoFilter_Conjunctive(t *testing.T) {
	userID := primitive.NewObjectID()
	filter := buildTodoFilter(model.TodoListParams{
		UserID:    userID,
		Completed: boolPtr(true),
		Priority:  priorityPtr(model.PriorityHigh),
		Search:    "urgent",
	})

	if got := filter["completed"]; got != true {
		t.Errorf("expected completed=true, got %v", got)
	}
	if got := filter["priority"]; got != model.PriorityHigh {
		t.Errorf("expected priority=high, got %v", got)
	}
	or, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter["$or"])
	}
	if len(or) != 3 {
		t.Fatalf("expected search over title, description, tags; got %d clauses", len(or))
	}
}

func TestBuildTodoFilter_CompletedPartition(t *testing.T) {
	// Filtering completed=true then completed=false must partition the set:
	// the two filters differ only in the completed value.
	userID := primitive.NewObjectID()
	completed := buildTodoFilter(model.TodoListParams{UserID: userID, Completed: boolPtr(true)})
	pending := buildTodoFilter(model.TodoListParams{UserID: userID, Completed: boolPtr(false)})

	if completed["completed"] != true || pending["completed"] != false {
		t.Errorf("expected exact boolean matches, got %v and %v", completed["completed"], pending["completed"])
	}
	if completed["user"] != pending["user"] {
		t.Error("both filters must share the same user scope")
	}
}

func TestBuildTodoFilter_SearchCaseInsensitive(t *testing.T) {
	filter := buildTodoFilter(model.TodoListParams{
		UserID: primitive.NewObjectID(),
		Search: "URGENT",
	})

	or := filter["$or"].([]bson.M)
	for _, clause := range or {
		for field, v := range clause {
			re, ok := v.(primitive.Regex)
			if !ok {
				t.Fatalf("expected regex for %s, got %T", field, v)
			}
			if re.Options != "i" {
				t.Errorf("expected case-insensitive regex for %s, got options %q", field, re.Options)
			}
			if re.Pattern != "URGENT" {
				t.Errorf("expected literal pattern, got %q", re.Pattern)
			}
		}
	}
}

func TestBuildTodoFilter_SearchEscapesMetaCharacters(t *testing.T) {
	filter := buildTodoFilter(model.TodoListParams{
		UserID: primitive.NewObjectID(),
		Search: "a.b*",
	})

	or := filter["$or"].([]bson.M)
	re := or[0]["title"].(primitive.Regex)
	if re.Pattern != `a\.b\*` {
		t.Errorf("expected quoted pattern, got %q", re.Pattern)
	}
}

func TestBuildTodoSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantField string
		wantDir   int
	}{
		{"defaults to createdAt desc", "", "", "createdAt", -1},
		{"explicit asc", "dueDate", "asc", "dueDate", 1},
		{"explicit desc", "title", "desc", "title", -1},
		{"unknown order falls back to desc", "priority", "descending", "priority", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort := buildTodoSort(model.TodoListParams{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			if len(sort) != 1 {
				t.Fatalf("expected single sort key, got %v", sort)
			}
			if sort[0].Key != tt.wantField {
				t.Errorf("expected sort field %s, got %s", tt.wantField, sort[0].Key)
			}
			if sort[0].Value != tt.wantDir {
				t.Errorf("expected direction %d, got %v", tt.wantDir, sort[0].Value)
			}
		})
	}
}
