package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vineetGray/crudtodo/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ServeHTTP routes /api/users and /api/users/{id}
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/users")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.Contains(path, "/") {
		WriteError(w, http.StatusNotFound, "API endpoint not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, path)
	case http.MethodPut:
		h.handleUpdate(w, r, path)
	case http.MethodDelete:
		h.handleDelete(w, r, path)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteList(w, http.StatusOK, fmt.Sprintf("found %d users", len(users)), users, len(users))
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "user details retrieved successfully", user)
}

type createUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		WriteError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	user, err := h.svc.Create(r.Context(), service.CreateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusCreated, "user created successfully", user)
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Update(r.Context(), id, service.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "user updated successfully", user)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "user and all associated todos deleted successfully", user)
}
