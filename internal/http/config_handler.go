package http

import (
	"net/http"

	"github.com/fjod/go_storefront/internal/config"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GET /config reports which credentials are present and hands clients the
// publishable key. Secrets themselves are never echoed back.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stripeConfigured":  h.cfg.StripeSecretKey != "",
		"mongodbConfigured": h.cfg.MongoURI != "",
		"publishableKey":    h.cfg.StripePublishableKey,
	})
}
