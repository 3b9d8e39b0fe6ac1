package handler

import (
	"net/http"
	"strconv"

	"github.com/kikoi/portfolio-backend/internal/apperr"
	"github.com/kikoi/portfolio-backend/internal/model"
	"github.com/kikoi/portfolio-backend/internal/service"
)

const maxMessageLength = 5000

// ContactHandler handles contact form submission and operator listing.
type ContactHandler struct {
	contactService service.ContactService
	resp           *Responder
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService, resp *Responder) *ContactHandler {
	return &ContactHandler{contactService: contactService, resp: resp}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// name, email and message are required; message max 5000 chars.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	if len([]rune(req.Message)) > maxMessageLength {
		h.resp.Error(w, r, apperr.Invalid("message", "Message must be at most 5000 characters"))
		return
	}

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Message received successfully"})
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Success  bool                    `json:"success"`
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts (operator only).
// Supports query params: status (all/new/unread/archived), limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := model.ContactListOptions{
		Status: q.Get("status"),
		Limit:  20,
	}
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := q.Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Success: true, Messages: messages})
}
