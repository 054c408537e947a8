package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store DecisionStore
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store DecisionStore) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSummary returns status counts and the checklist outcome.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleDecisions returns the record list, with optional sort/order query params.
func (h *Handlers) HandleDecisions(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	decisions, err := h.store.ListDecisions(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, decisions)
}

// HandleDecisionDetail returns one record with its parsed content.
func (h *Handlers) HandleDecisionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/decisions/"), "/")
		if len(parts) > 0 {
			id = parts[0]
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "decision id is required")
		return
	}

	detail, err := h.store.GetDecision(id)
	if err != nil {
		if errors.Is(err, ErrDecisionNotFound) {
			writeError(w, http.StatusNotFound, "decision not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store DecisionStore) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/decisions", h.HandleDecisions)
	mux.HandleFunc("GET /api/decisions/{id}", h.HandleDecisionDetail)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
