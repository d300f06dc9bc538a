package handler

import (
	"bookit/internal/bookings/service"
	apperrors "bookit/pkg/errors"
	httputil "bookit/pkg/http"
	"bookit/pkg/logger"
	"bookit/pkg/model"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidRequest("Invalid request body", nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteBookingCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteBookingCreated", "error", err)
	}
}

func (h *BookingHandler) GetByOrderID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByOrderID(r.Context(), ps.ByName("orderId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByOrderID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOrderID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ValidatePromo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidRequest("Invalid request body", nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ValidatePromo", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	result, err := h.service.ValidatePromo(req.Code)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ValidatePromo", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, model.PromoResponse{
		Valid:    result.Valid,
		Discount: result.Discount,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ValidatePromo", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings/order/:orderId", h.GetByOrderID)
	router.POST("/api/bookings/promo/validate", h.ValidatePromo)
}
