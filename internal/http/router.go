package http

import (
	"net/http"

	"github.com/vineetGray/crudtodo/internal/http/handler"
	"github.com/vineetGray/crudtodo/internal/service"
)

func NewRouter(userSvc *service.UserService, todoSvc *service.TodoService, db handler.Pinger, env string) http.Handler {
	mux := http.NewServeMux()

	// Health check includes the store connection status for probes
	mux.Handle("/api/health", handler.NewHealthHandler(db, env))

	userHandler := handler.NewUserHandler(userSvc)
	mux.Handle("/api/users", userHandler)
	mux.Handle("/api/users/", userHandler)

	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle("/api/todos", todoHandler)
	mux.Handle("/api/todos/", todoHandler)

	// Everything else gets the JSON 404 envelope, not the stdlib text page
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusNotFound, "API endpoint not found")
	})

	return mux
}
