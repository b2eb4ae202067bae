package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

// Server exposes the todo CRUD operations over HTTP/JSON. Handlers are
// stateless; the shared store handle is the only cross-request state.
type Server struct {
	addr  string
	store store.Store
}

// createTodoRequest is the POST body. The wire field for the todo text
// is "data"; the completed flag is not accepted from the caller.
type createTodoRequest struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// New creates a Server listening on addr and backed by s.
func New(addr string, s store.Store) *Server {
	return &Server{addr: addr, store: s}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/api/all-todos", s.listTodos())
	router.POST("/api/new-todos", s.createTodo())
	router.PUT("/api/edit-todo/:id", s.updateTodo())
	router.DELETE("/api/all-todos/:id", s.deleteTodo())
	router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		w.WriteHeader(http.StatusNoContent)
	})
	return router
}

// Listen starts serving and blocks until the server stops.
func (s *Server) Listen() error {
	log.Printf("Listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) listTodos() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		todos, err := s.store.ListTodos(r.Context())
		if err != nil {
			log.Printf("Error fetching todos: %v", err)
			writeServerError(w)
			return
		}
		if todos == nil {
			todos = []model.Todo{}
		}
		writeJSON(w, http.StatusOK, todos)
	}
}

func (s *Server) createTodo() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input createTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			log.Printf("Error adding todo: %v", err)
			writeServerError(w)
			return
		}

		// Completed is forced false at creation regardless of input.
		todo, err := s.store.CreateTodo(r.Context(), model.Todo{
			ID:        input.ID,
			Text:      input.Data,
			Completed: false,
		})
		if err != nil {
			log.Printf("Error adding todo: %v", err)
			writeServerError(w)
			return
		}
		writeJSON(w, http.StatusCreated, todo)
	}
}

func (s *Server) updateTodo() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		var patch model.TodoPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			log.Printf("Error updating todo: %v", err)
			writeServerError(w)
			return
		}

		todo, err := s.store.UpdateTodo(r.Context(), p.ByName("id"), patch)
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		if err != nil {
			log.Printf("Error updating todo: %v", err)
			writeServerError(w)
			return
		}
		writeJSON(w, http.StatusOK, todo)
	}
}

func (s *Server) deleteTodo() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		todo, err := s.store.DeleteTodo(r.Context(), p.ByName("id"))
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w)
			return
		}
		if err != nil {
			log.Printf("Error deleting todo: %v", err)
			writeServerError(w)
			return
		}
		writeJSON(w, http.StatusOK, todo)
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// writeNotFound reports a missing todo id. Only update and delete can
// produce this.
func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
}

// writeServerError reports an opaque failure; the actual cause is only
// logged server-side.
func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
}
