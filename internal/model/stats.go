package model

import (
	"math"
	"time"
)

type PriorityStats struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// StatsSummary is the reduced stats block attached to each user in the
// user list response.
type StatsSummary struct {
	TotalTodos     int `json:"totalTodos"`
	CompletedTodos int `json:"completedTodos"`
	PendingTodos   int `json:"pendingTodos"`
}

// TodoStats is the full aggregation over one user's complete todo set.
type TodoStats struct {
	TotalTodos     int           `json:"totalTodos"`
	CompletedTodos int           `json:"completedTodos"`
	PendingTodos   int           `json:"pendingTodos"`
	OverdueTodos   int           `json:"overdueTodos"`
	PriorityStats  PriorityStats `json:"priorityStats"`
	CompletionRate int           `json:"completionRate"`
}

func (s TodoStats) Summary() StatsSummary {
	return StatsSummary{
		TotalTodos:     s.TotalTodos,
		CompletedTodos: s.CompletedTodos,
		PendingTodos:   s.PendingTodos,
	}
}

// ComputeStats aggregates a user's todos in a single pass. It is recomputed
// fresh on every call; nothing is cached since overdue counts shift with the
// clock.
func ComputeStats(todos []Todo, now time.Time) TodoStats {
	stats := TodoStats{TotalTodos: len(todos)}

	for _, todo := range todos {
		if todo.Completed {
			stats.CompletedTodos++
		} else if todo.DueDate != nil && todo.DueDate.Before(now) {
			stats.OverdueTodos++
		}
		switch todo.Priority {
		case PriorityHigh:
			stats.PriorityStats.High++
		case PriorityMedium:
			stats.PriorityStats.Medium++
		case PriorityLow:
			stats.PriorityStats.Low++
		}
	}

	stats.PendingTodos = stats.TotalTodos - stats.CompletedTodos
	if stats.TotalTodos > 0 {
		rate := float64(stats.CompletedTodos) / float64(stats.TotalTodos) * 100
		stats.CompletionRate = int(math.Round(rate))
	}
	return stats
}
