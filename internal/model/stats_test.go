package model_test

import (
	"testing"
	"time"

	"github.com/vineetGray/crudtodo/internal/model"
)

func statsFixture() []model.Todo {
	overdue := now.Add(-48 * time.Hour)
	upcoming := now.Add(48 * time.Hour)
	return []model.Todo{
		{Title: "done high", Completed: true, Priority: model.PriorityHigh},
		{Title: "overdue medium", Completed: false, Priority: model.PriorityMedium, DueDate: &overdue},
		{Title: "completed past due is not overdue", Completed: true, Priority: model.PriorityLow, DueDate: &overdue},
		{Title: "upcoming low", Completed: false, Priority: model.PriorityLow, DueDate: &upcoming},
		{Title: "no due date", Completed: false, Priority: model.PriorityMedium},
	}
}

func TestComputeStats(t *testing.T) {
	stats := model.ComputeStats(statsFixture(), now)

	if stats.TotalTodos != 5 {
		t.Errorf("expected totalTodos=5, got %d", stats.TotalTodos)
	}
	if stats.CompletedTodos != 2 {
		t.Errorf("expected completedTodos=2, got %d", stats.CompletedTodos)
	}
	if stats.PendingTodos != 3 {
		t.Errorf("expected pendingTodos=3, got %d", stats.PendingTodos)
	}
	if stats.OverdueTodos != 1 {
		t.Errorf("expected overdueTodos=1 (completed todos never count), got %d", stats.OverdueTodos)
	}
	if stats.PriorityStats.High != 1 || stats.PriorityStats.Medium != 2 || stats.PriorityStats.Low != 2 {
		t.Errorf("unexpected priority breakdown: %+v", stats.PriorityStats)
	}
	if stats.CompletionRate != 40 {
		t.Errorf("expected completionRate=40, got %d", stats.CompletionRate)
	}
}

func TestComputeStats_Identities(t *testing.T) {
	stats := model.ComputeStats(statsFixture(), now)

	if stats.CompletedTodos+stats.PendingTodos != stats.TotalTodos {
		t.Error("completed + pending must equal total")
	}
	sum := stats.PriorityStats.High + stats.PriorityStats.Medium + stats.PriorityStats.Low
	if sum != stats.TotalTodos {
		t.Errorf("priority counts must partition the set: %d != %d", sum, stats.TotalTodos)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := model.ComputeStats(nil, now)

	if stats.TotalTodos != 0 {
		t.Errorf("expected totalTodos=0, got %d", stats.TotalTodos)
	}
	if stats.CompletionRate != 0 {
		t.Errorf("expected completionRate=0 for empty set, got %d", stats.CompletionRate)
	}
}

func TestComputeStats_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"half", 1, 2, 50},
		{"all", 4, 4, 100},
		{"one of eight", 1, 8, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := make([]model.Todo, tt.total)
			for i := 0; i < tt.completed; i++ {
				todos[i].Completed = true
			}
			stats := model.ComputeStats(todos, now)
			if stats.CompletionRate != tt.want {
				t.Errorf("expected completionRate=%d, got %d", tt.want, stats.CompletionRate)
			}
		})
	}
}
