package handler

import (
	"net/http"

	"bookit/internal/experiences/service"
	httputil "bookit/pkg/http"
	"bookit/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ExperienceHandler struct {
	service service.ExperienceService
	log     *logger.Logger
}

func NewExperienceHandler(service service.ExperienceService, log *logger.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		service: service,
		log:     log,
	}
}

func (h *ExperienceHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	experiences, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, experiences); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetAll", "operation", "WriteJSON", "error", err)
	}
}

func (h *ExperienceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	experience, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, experience); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetByID", "operation", "WriteJSON", "error", err)
	}
}

func (h *ExperienceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/experiences", h.GetAll)
	router.GET("/api/experiences/:id", h.GetByID)
}
