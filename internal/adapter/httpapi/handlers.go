package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gemini-chatbot-backend/internal/usecase/chat"
)

type ChatRequest struct {
	Message   string `json:"message"`
	AgentType string `json:"agent_type,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	AgentName string `json:"agent_name"`
	Model     string `json:"model"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type AgentInfoResponse struct {
	Name           string   `json:"name"`
	Model          string   `json:"model"`
	Instructions   string   `json:"instructions"`
	AvailableTypes []string `json:"available_types"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": serviceName + " is running",
		"version": version,
		"status":  "active",
		"endpoints": map[string]string{
			"/chat":       "POST - Send message to chatbot",
			"/agent-info": "GET - Get current agent information",
			"/health":     "GET - Health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := "healthy"
	if s.chat == nil {
		status = "initializing"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"service": serviceName,
		"model":   s.model,
	})
}

func (s *Server) handleAgentInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.chat == nil {
		writeDetail(w, http.StatusServiceUnavailable, "Chatbot service not initialized")
		return
	}

	info := s.chat.Info()
	writeJSON(w, http.StatusOK, AgentInfoResponse{
		Name:           info.Name,
		Model:          info.Model,
		Instructions:   info.Instructions,
		AvailableTypes: info.AvailableTypes,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.chat == nil {
		writeDetail(w, http.StatusServiceUnavailable, "Chatbot service not initialized")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.chat.Chat(r.Context(), req.SessionID, req.AgentType, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeDetail(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		log.Printf("chat request failed: %v", err)
		writeJSON(w, http.StatusOK, ChatResponse{
			Response:  apologyText,
			AgentName: "Error Handler",
			Model:     s.chat.Model(),
			Success:   false,
			Error:     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  result.Reply,
		AgentName: result.AgentName,
		Model:     s.chat.Model(),
		Success:   true,
	})
}
