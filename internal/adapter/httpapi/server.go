package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"gemini-chatbot-backend/internal/usecase/chat"
)

const (
	serviceName = "AI Chatbot API"
	version     = "1.0.0"

	// Fixed user-facing text for upstream failures. The chat endpoint
	// answers 200 with success=false instead of a 5xx so the frontend
	// never sees a raw server error.
	apologyText = "I apologize, but I encountered an error processing your request."
)

// Server is the REST surface in front of the chat service. A nil chat
// service means the backend has not finished initializing; the handlers
// answer 503 until it is set.
type Server struct {
	chat    *chat.Service
	model   string
	origins []string
}

func NewServer(chatSvc *chat.Service, model string, allowedOrigins []string) *Server {
	return &Server{
		chat:    chatSvc,
		model:   model,
		origins: allowedOrigins,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/agent-info", s.handleAgentInfo)
	mux.HandleFunc("/chat", s.handleChat)
	// Identical blocking contract to /chat, kept for forward
	// compatibility with a streaming frontend.
	mux.HandleFunc("/chat/stream", s.handleChat)

	return requestID(cors(s.origins, mux))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
