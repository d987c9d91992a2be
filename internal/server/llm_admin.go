// ABOUTME: Thin pass-through endpoints for Ollama model administration
package server

import (
	"net/http"
	"strings"

	"github.com/wingmanhq/wingman-backend/internal/llm"
)

func (s *Server) handleLLMStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.completer.Status(r.Context()))
}

func (s *Server) handleLLMSystem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, llm.HostInfo())
}

// handleLLMModels serves the supported model catalog.
func (s *Server) handleLLMModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, llm.Catalog())
}

type modelOpRequest struct {
	Name string `json:"name"`
}

// handleLLMModelOp routes /api/v1/llm/models/pull (POST) and
// /api/v1/llm/models/{name} (DELETE). Model names contain colons, so they
// arrive as the path tail.
func (s *Server) handleLLMModelOp(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/llm/models/")

	switch {
	case rest == "pull" && r.Method == http.MethodPost:
		var req modelOpRequest
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
		if req.Name == "" {
			badRequest(w, "name is required")
			return
		}
		if err := s.completer.PullModel(r.Context(), req.Name); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "model": req.Name})

	case rest != "" && r.Method == http.MethodDelete:
		if err := s.completer.DeleteModel(r.Context(), rest); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "model": rest})

	default:
		methodNotAllowed(w)
	}
}
