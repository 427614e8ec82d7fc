package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vineetGray/crudtodo/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes:
//
//	POST   /api/todos
//	GET    /api/todos/user/{userId}
//	GET    /api/todos/user/{userId}/stats
//	GET    /api/todos/{id}
//	PUT    /api/todos/{id}
//	DELETE /api/todos/{id}
//	PATCH  /api/todos/{id}/toggle
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/todos")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")

	if parts[0] == "user" {
		switch {
		case len(parts) == 2:
			h.requireGet(w, r, func() { h.handleList(w, r, parts[1]) })
		case len(parts) == 3 && parts[2] == "stats":
			h.requireGet(w, r, func() { h.handleStats(w, r, parts[1]) })
		default:
			WriteError(w, http.StatusNotFound, "API endpoint not found")
		}
		return
	}

	todoID := parts[0]
	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, todoID)
		case http.MethodPut:
			h.handleUpdate(w, r, todoID)
		case http.MethodDelete:
			h.handleDelete(w, r, todoID)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(parts) == 2 && parts[1] == "toggle":
		if r.Method != http.MethodPatch {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.handleToggle(w, r, todoID)
	default:
		WriteError(w, http.StatusNotFound, "API endpoint not found")
	}
}

func (h *TodoHandler) requireGet(w http.ResponseWriter, r *http.Request, fn func()) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	fn()
}

type createTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags"`
	User        string   `json:"user"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.User == "" {
		WriteError(w, http.StatusBadRequest, "title and user are required")
		return
	}

	todo, err := h.svc.Create(r.Context(), service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		User:        req.User,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusCreated, "todo created successfully", todo)
}

func (h *TodoHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	todo, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "todo retrieved successfully", todo)
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	query := r.URL.Query()

	input := service.ListTodosInput{
		UserID:    userID,
		Priority:  query.Get("priority"),
		Search:    query.Get("search"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	if completed := query.Get("completed"); completed != "" {
		switch completed {
		case "true", "false":
			v := completed == "true"
			input.Completed = &v
		default:
			WriteError(w, http.StatusBadRequest, "completed must be true or false")
			return
		}
	}

	todos, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteList(w, http.StatusOK, fmt.Sprintf("found %d todos", len(todos)), todos, len(todos))
}

type updateTodoRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Completed   *bool     `json:"completed"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	Tags        *[]string `json:"tags"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.svc.Update(r.Context(), id, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "todo updated successfully", todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	todo, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "todo deleted successfully", todo)
}

func (h *TodoHandler) handleToggle(w http.ResponseWriter, r *http.Request, id string) {
	todo, err := h.svc.Toggle(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	state := "incomplete"
	if todo.Completed {
		state = "completed"
	}
	WriteData(w, http.StatusOK, fmt.Sprintf("todo marked as %s", state), todo)
}

func (h *TodoHandler) handleStats(w http.ResponseWriter, r *http.Request, userID string) {
	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "todo statistics retrieved successfully", stats)
}
