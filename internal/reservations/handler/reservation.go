package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"podquest/internal/reservations/service"
	apperrors "podquest/pkg/errors"
	httputil "podquest/pkg/http"
	"podquest/pkg/logger"
	"podquest/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.SchedulerService
	log     *logger.Logger
}

func NewReservationHandler(service service.SchedulerService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Malformed booking request body", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("request body must be valid JSON")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateBooking", "error", writeErr)
		}
		return
	}

	reservation, err := h.service.AttemptBooking(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateBooking", "error", writeErr)
		}
		return
	}

	message := fmt.Sprintf("Booking Confirmed for %s on %s at %s!",
		reservation.PodName,
		reservation.StartTime.Format("2006-01-02"),
		reservation.StartTime.Format("15:04"))

	if err := httputil.WriteCreated(w, reservation, message); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateBooking", "error", err)
	}
}

func (h *ReservationHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "error", writeErr)
		}
		return
	}

	reservations, total, err := h.service.ListReservations(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBookings", "error", err)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.CreateBooking)
	router.GET("/api/v1/bookings", h.ListBookings)
}
