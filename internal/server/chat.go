// ABOUTME: Chat endpoints: send a message for an AI reply, fetch history
// ABOUTME: The reply is persisted even when it comes from the fallback table
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

type sendChatRequest struct {
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
	Model     string `json:"model,omitempty"`
}

type sendChatResponse struct {
	Response       string  `json:"response"`
	Success        bool    `json:"success"`
	ModelUsed      string  `json:"model_used,omitempty"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
	ContextUsed    bool    `json:"context_used"`
}

// handleChat routes /api/v1/chat/ (POST) and /api/v1/chat/{user_id} (GET).
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/chat/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		s.handleSendChat(w, r)
	case rest != "" && r.Method == http.MethodGet:
		s.handleChatHistory(w, r, rest)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	var req sendChatRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			badRequest(w, "timestamp must be RFC 3339")
			return
		}
		ts = parsed
	}

	userMsg, err := models.NewMessage(req.UserID, req.Message, false, ts)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := s.store.AppendMessage(userMsg); err != nil {
		internalError(w, err)
		return
	}

	userContext := s.builder.BuildContext(req.UserID, req.Message, "")
	result := s.completer.Generate(r.Context(), req.Message, userContext, req.Model)

	reply := result.Response
	if !result.Success {
		reply = result.FallbackResponse
	}

	aiMsg, err := models.NewMessage(req.UserID, reply, true, time.Now().UTC())
	if err != nil {
		internalError(w, err)
		return
	}
	if err := s.store.AppendMessage(aiMsg); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendChatResponse{
		Response:       reply,
		Success:        result.Success,
		ModelUsed:      result.ModelUsed,
		ProcessingTime: result.ProcessingTime,
		ContextUsed:    result.ContextUsed,
	})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request, userID string) {
	msgs, err := s.store.ChatHistory(userID)
	if err != nil {
		internalError(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
