package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleServiceError maps domain errors to HTTP status codes. Anything
// unrecognized (processor refusals, persistence failures) is surfaced
// verbatim as a 500; failures are terminal for the attempt, never retried.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, "invalid_amount", "Invalid amount")
	case errors.Is(err, checkout.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, "not_configured", "Payment system not configured")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
