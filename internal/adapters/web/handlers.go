package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"quotegen/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService, the chi router, and the AI rate limiters.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	log       *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, log *zap.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		log:       log,
	}

	generateLimiter := newKeyedLimiter(generatePerMinute)
	reviseLimiter := newKeyedLimiter(revisePerMinute)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Protected API routes ─────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Route("/api/company", func(r chi.Router) {
			r.Post("/", h.createCompany)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Use(h.RequireMembership)

				r.Get("/", h.getCompany)
				r.Get("/quotes", h.listQuotes)

				r.Post("/client", h.createClient)
				r.Get("/client", h.listClients)

				r.Route("/client/{clientID}/quote", func(r chi.Router) {
					r.Post("/", h.createQuote)

					r.Route("/{quoteID}", func(r chi.Router) {
						r.Get("/", h.getQuote)
						r.Put("/", h.updateQuote)
						r.Delete("/", h.deleteQuote)

						r.With(RateLimit(generateLimiter,
							"Too many AI generate requests. Try again in 1 minute.")).
							Post("/generate", h.generateQuoteText)
						r.With(RateLimit(reviseLimiter,
							"Too many AI update requests. Try again in 1 minute.")).
							Post("/update-generated", h.updateGeneratedText)
					})
				})
			})
		})
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, http.StatusOK, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "INVALID_INPUT", http.StatusBadRequest)
		return false
	}
	return true
}
