package handlers

import (
	"net/http"

	"github.com/turtacn/ScholarAI/internal/application/assistant"
	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
)

// AssistantHandler serves the chat endpoints.  Every route requires an
// authenticated user; history is keyed by the token subject.
type AssistantHandler struct {
	assistant   assistant.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(svc assistant.Service, logger logging.Logger, maxBodySize int64) *AssistantHandler {
	return &AssistantHandler{assistant: svc, logger: logger, maxBodySize: maxBodySize}
}

// AskRequest is the body of POST /assistant/messages.
type AskRequest struct {
	Message string `json:"message"`
}

// AskResponse carries the assistant's reply and where it came from.
type AskResponse struct {
	Message conversation.Message `json:"message"`
	Source  string               `json:"source"`
}

// HistoryResponse is the body of GET /assistant/history.
type HistoryResponse struct {
	Messages []conversation.Message `json:"messages"`
}

// Ask handles POST /api/v1/assistant/messages.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	var req AskRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		WriteError(w, err)
		return
	}
	reply, err := h.assistant.Ask(r.Context(), userID, req.Message)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Message: reply.Message, Source: reply.Source})
}

// History handles GET /api/v1/assistant/history.
func (h *AssistantHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	msgs, err := h.assistant.History(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Messages: msgs})
}

// ClearHistory handles DELETE /api/v1/assistant/history.
func (h *AssistantHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.assistant.ClearHistory(r.Context(), userID); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//Personal.AI order the ending
