package handler

import (
	"net/http"

	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/service"
)

// ChatbotHandler serves the visitor chat endpoints and the operator view of
// the conversation log.
type ChatbotHandler struct {
	chatbot service.ChatbotService
	log     service.ConversationLog
	resp    *Responder
}

func NewChatbotHandler(chatbot service.ChatbotService, log service.ConversationLog, resp *Responder) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot, log: log, resp: resp}
}

type chatMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type chatMessageResponse struct {
	Success        bool   `json:"success"`
	Response       string `json:"response"`
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

// Message handles POST /api/chatbot/message.
func (h *ChatbotHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	res, err := h.chatbot.HandleMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatMessageResponse{
		Success:        true,
		Response:       res.Response,
		ConversationID: res.ConversationID,
		UserID:         res.UserID,
	})
}

type historyResponse struct {
	Success bool                         `json:"success"`
	History []*model.ConversationMessage `json:"history"`
}

// History handles GET /api/chatbot/history/{userId}.
func (h *ChatbotHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.chatbot.History(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if history == nil {
		history = []*model.ConversationMessage{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, History: history})
}

type activeMessagesResponse struct {
	Success  bool                         `json:"success"`
	Messages []*model.ConversationMessage `json:"messages"`
}

// ActiveMessages handles GET /api/admin/chatbot/active (operator only).
func (h *ChatbotHandler) ActiveMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.log.ActiveMessages(r.Context())
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if msgs == nil {
		msgs = []*model.ConversationMessage{}
	}
	writeJSON(w, http.StatusOK, activeMessagesResponse{Success: true, Messages: msgs})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// UpdateStatus handles PATCH /api/admin/chatbot/messages/{id}/status (operator only).
func (h *ChatbotHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.log.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
