package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
	"github.com/ChaiWithJai/gtm-agent/internal/model/company"
	"github.com/ChaiWithJai/gtm-agent/internal/model/event"
	"github.com/ChaiWithJai/gtm-agent/internal/model/session"
	"github.com/ChaiWithJai/gtm-agent/internal/service/orchestrator"
	"github.com/ChaiWithJai/gtm-agent/internal/service/store"
	"github.com/ChaiWithJai/gtm-agent/pkg/utils"
)

// Handler exposes the diagnostic conversation over HTTP.
type Handler struct {
	orch  *orchestrator.Orchestrator
	store *store.Store
}

// New creates the agent handler.
func New(orch *orchestrator.Orchestrator, st *store.Store) *Handler {
	return &Handler{orch: orch, store: st}
}

// RegisterRoutes wires the agent endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/agent/start", h.handleStart)
	r.Post("/agent/message", h.handleMessage)
	r.Get("/agent/state/{sessionID}", h.handleState)
	r.Get("/artifacts/{sessionID}/{filename}", h.handleArtifact)
}

type startPayload struct {
	ProductURL         string `json:"productUrl"`
	ProductDescription string `json:"productDescription"`
}

type startResponse struct {
	SessionID string            `json:"sessionId"`
	Messages  []session.Message `json:"messages"`
	Company   *company.Context  `json:"companyContext,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload startPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.orch.Start(r.Context(), orchestrator.StartInput{
		ProductURL:         payload.ProductURL,
		ProductDescription: payload.ProductDescription,
	})
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidRequest) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[agent] start failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	resp := startResponse{SessionID: result.SessionID, Messages: result.Messages}
	if result.Company != nil {
		resp.Company = result.Company
	}
	utils.RespondJSON(w, http.StatusCreated, resp)
}

type messagePayload struct {
	SessionID      string `json:"sessionId"`
	Message        string `json:"message"`
	SelectedOption string `json:"selectedOption"`
}

// handleMessage advances the session one step and streams the resulting
// events as SSE. Headers go out lazily on the first event, so failures
// ahead of any emission still surface as plain HTTP errors and no stream
// is opened for an unknown or busy session.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload messagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sink := &sseSink{w: w, flusher: flusher}
	err := h.orch.Message(r.Context(), payload.SessionID, payload.Message, payload.SelectedOption, sink)
	if err != nil && !sink.started {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, store.ErrSessionBusy):
			utils.RespondError(w, http.StatusConflict, "session is processing another request")
		case errors.Is(err, orchestrator.ErrInvalidRequest):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[agent] message failed for session %s: %v", payload.SessionID, err)
			utils.RespondError(w, http.StatusInternalServerError, "message handling failed")
		}
		return
	}
	if err != nil {
		log.Printf("[agent] stream ended with error for session %s: %v", payload.SessionID, err)
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snapshot, err := h.store.Get(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, store.ErrSessionBusy):
			utils.RespondError(w, http.StatusConflict, "session is processing another request")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleArtifact(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	filename := chi.URLParam(r, "filename")

	var found *artifact.Artifact
	err := h.store.With(sessionID, func(s *session.Session) error {
		if a, ok := s.Artifact(filename); ok {
			found = &a
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, store.ErrSessionBusy):
			utils.RespondError(w, http.StatusConflict, "session is processing another request")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to load artifact")
		}
		return
	}
	if found == nil {
		utils.RespondError(w, http.StatusNotFound, "artifact not found")
		return
	}

	w.Header().Set("Content-Type", artifact.MediaType(found.Filename))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", found.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(found.Content)); err != nil {
		log.Printf("[agent] failed to write artifact %s: %v", found.Filename, err)
	}
}

// sseSink adapts the response writer into the orchestrator's event sink,
// preserving emission order and flushing every event as it is produced.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// Send implements orchestrator.Sink.
func (s *sseSink) Send(e event.Event) error {
	if !s.started {
		utils.SetupSSEHeaders(s.w)
		s.started = true
	}
	return utils.WriteSSEChunk(s.w, s.flusher, e)
}
