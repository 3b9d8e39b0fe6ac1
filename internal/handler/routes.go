package handler

import "net/http"

// Routes bundles the handlers and middleware that make up the API.
type Routes struct {
	Health   *HealthHandler
	Rates    *RatesHandler
	Contact  *ContactHandler
	Proposal *ProposalHandler
	Chatbot  *ChatbotHandler

	// RequireOperator guards the operator API. Nil leaves the operator
	// routes unregistered.
	RequireOperator func(http.Handler) http.Handler

	RateLimiter    *RateLimiter
	AllowedOrigins []string
}

// Handler registers every route and wraps the mux in the middleware chain:
// request logging, security headers, CORS, then rate limiting.
func (rt Routes) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", rt.Health.Health)
	mux.HandleFunc("GET /api/rates", rt.Rates.Latest)
	mux.HandleFunc("POST /api/contact", rt.Contact.Submit)
	mux.HandleFunc("POST /api/generate-proposal", rt.Proposal.Generate)
	mux.HandleFunc("POST /api/chatbot/message", rt.Chatbot.Message)
	mux.HandleFunc("GET /api/chatbot/history/{userId}", rt.Chatbot.History)

	if rt.RequireOperator != nil {
		op := rt.RequireOperator
		mux.Handle("GET /api/admin/contacts", op(http.HandlerFunc(rt.Contact.AdminList)))
		mux.Handle("GET /api/admin/chatbot/active", op(http.HandlerFunc(rt.Chatbot.ActiveMessages)))
		mux.Handle("PATCH /api/admin/chatbot/messages/{id}/status", op(http.HandlerFunc(rt.Chatbot.UpdateStatus)))
	}

	var h http.Handler = mux
	if rt.RateLimiter != nil {
		h = rt.RateLimiter.Middleware(h)
	}
	h = CORS(rt.AllowedOrigins)(h)
	h = SecurityHeaders(h)
	return RequestLogger(h)
}
