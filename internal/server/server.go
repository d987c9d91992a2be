// ABOUTME: HTTP JSON API wiring storage, the context engine, and the Ollama client
// ABOUTME: Stdlib mux with method dispatch per route family and permissive CORS
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/wingmanhq/wingman-backend/internal/core"
	"github.com/wingmanhq/wingman-backend/internal/llm"
	"github.com/wingmanhq/wingman-backend/internal/storage"
)

// Completer is the completion surface the server needs. Implemented by
// llm.Client; tests substitute a stub.
type Completer interface {
	Generate(ctx context.Context, message, userContext, model string) llm.CompletionResult
	Status(ctx context.Context) llm.ServerStatus
	PullModel(ctx context.Context, name string) error
	DeleteModel(ctx context.Context, name string) error
}

// Server holds the handler dependencies.
type Server struct {
	store     *storage.Storage
	builder   *core.Builder
	completer Completer
	version   string
}

// NewServer builds the full route table and returns the root handler.
func NewServer(store *storage.Storage, builder *core.Builder, completer Completer, version string) http.Handler {
	s := &Server{
		store:     store,
		builder:   builder,
		completer: completer,
		version:   version,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)

	// /api/v1/chat/           POST: send message, get AI reply
	// /api/v1/chat/{user_id}  GET:  full history
	mux.HandleFunc("/api/v1/chat/", s.handleChat)

	mux.HandleFunc("/api/v1/tasks", s.handleTasks)
	mux.HandleFunc("/api/v1/tasks/", s.handleTaskByID)

	mux.HandleFunc("/api/v1/calendar", s.handleEvents)
	mux.HandleFunc("/api/v1/calendar/", s.handleEventByID)

	mux.HandleFunc("/api/v1/diary", s.handleDiary)
	mux.HandleFunc("/api/v1/diary/", s.handleDiaryByID)

	mux.HandleFunc("/api/v1/user/register", s.handleRegister)
	mux.HandleFunc("/api/v1/user/login", s.handleLogin)
	mux.HandleFunc("/api/v1/user/", s.handleUserByID)

	mux.HandleFunc("/api/v1/llm/status", s.handleLLMStatus)
	mux.HandleFunc("/api/v1/llm/system", s.handleLLMSystem)
	mux.HandleFunc("/api/v1/llm/models", s.handleLLMModels)
	mux.HandleFunc("/api/v1/llm/models/", s.handleLLMModelOp)

	return withCORS(mux)
}

// withCORS allows the Electron frontend's origin. The desktop app serves from
// file:// and localhost, so the origin list stays open.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// handleStatus is the frontend's backend probe: it reports whether the
// database answers.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	if err := s.store.Ping(); err != nil {
		log.Printf("[Server] database ping failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"backend":  "running",
			"database": "error",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"backend":  "running",
		"database": "ok",
		"version":  s.version,
	})
}

// HTTP helpers

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter, err error) {
	log.Printf("[Server] internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
