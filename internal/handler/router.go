package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	agentHandler "github.com/ChaiWithJai/gtm-agent/internal/handler/agent"
	diagnosticHandler "github.com/ChaiWithJai/gtm-agent/internal/handler/diagnostic"
	middlewarePkg "github.com/ChaiWithJai/gtm-agent/internal/middleware"
	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
	"github.com/ChaiWithJai/gtm-agent/internal/service/orchestrator"
	"github.com/ChaiWithJai/gtm-agent/internal/service/store"
	"github.com/ChaiWithJai/gtm-agent/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(orch *orchestrator.Orchestrator, st *store.Store, catalog *diagnostic.Catalog) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "gtm-agent",
		})
	})

	r.Route("/api", func(api chi.Router) {
		agentHandler.New(orch, st).RegisterRoutes(api)
		diagnosticHandler.New(catalog).RegisterRoutes(api)
	})

	return r
}
