package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/services"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

// ChatHandler forwards advisor queries. Failures come back as inline
// conversational replies rather than HTTP errors, so the chat view can
// always render something.
type ChatHandler struct {
	advisor services.AdvisorService
}

func NewChatHandler(advisor services.AdvisorService) *ChatHandler {
	return &ChatHandler{advisor: advisor}
}

type chatRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error bool   `json:"error,omitempty"`
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		utils.SendJSONError(w, "Message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.advisor.Ask(r.Context(), payload.Message, payload.History)
	if err != nil {
		ctxLogger.Warn("Advisor call failed", "error", err)
		utils.SendJSON(w, chatResponse{Reply: advisorErrorReply(err), Error: true}, http.StatusOK)
		return
	}
	utils.SendJSON(w, chatResponse{Reply: reply}, http.StatusOK)
}

// advisorErrorReply maps advisor failures onto the messages shown inline in
// the conversation.
func advisorErrorReply(err error) string {
	switch {
	case errors.Is(err, services.ErrNoBatch):
		return "I don't have any transaction data yet. Please upload and categorize a bank export first."
	case errors.Is(err, services.ErrAdvisorMisconfigured):
		return "The advisor service is not configured correctly. Please contact the administrator."
	case errors.Is(err, services.ErrAdvisorUnreachable):
		return "I couldn't reach the advisor service. Please try again in a moment."
	default:
		return "Something went wrong while talking to the advisor. Please try again."
	}
}
