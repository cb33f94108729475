package diagnostic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
	"github.com/ChaiWithJai/gtm-agent/pkg/utils"
)

// Handler serves the read-only question catalog.
type Handler struct {
	catalog *diagnostic.Catalog
}

// New creates the diagnostic handler.
func New(catalog *diagnostic.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes wires the catalog endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/diagnostic/questions", h.handleListQuestions)
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.catalog.All(),
	})
}
