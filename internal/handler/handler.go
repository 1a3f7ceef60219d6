// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the booking workflow.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/conferencehub/hotel-booking/internal/logger"
	"github.com/conferencehub/hotel-booking/internal/model"
	"github.com/conferencehub/hotel-booking/internal/service"
)

// BookingService is the workflow surface the handlers depend on.
type BookingService interface {
	GetBooking(ctx context.Context, userID int64) (*model.Booking, error)
	CreateBooking(ctx context.Context, userID, roomID int64) (*model.Booking, error)
	UpdateBooking(ctx context.Context, userID, roomID, bookingID int64) (*model.Booking, error)
}

// BookingHandler holds all HTTP handlers for the booking API.
type BookingHandler struct {
	svc      BookingService
	validate *validator.Validate
	log      *logger.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a workflow error to its HTTP status. Business
// rejections carry their kind; anything else is an internal failure and
// must not leak details to the client.
func (h *BookingHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rej *service.Error
	if errors.As(err, &rej) {
		switch rej.Kind {
		case service.KindNotFound:
			writeError(w, http.StatusNotFound, rej.Message)
		case service.KindForbidden:
			writeError(w, http.StatusForbidden, rej.Message)
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	h.log.Error("booking request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// GetBooking handles GET /booking
// Returns the authenticated user's booking with its room snapshot.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CreateBooking handles POST /booking
// Books the requested room for the authenticated user.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req model.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "roomId is required")
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), userID, *req.RoomID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BookingRoomResponse{RoomID: booking.RoomID})
}

// UpdateBooking handles PUT /booking/{bookingId}
// Moves an existing booking to the requested room.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bookingId must be numeric")
		return
	}

	var req model.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "roomId is required")
		return
	}

	booking, err := h.svc.UpdateBooking(r.Context(), userID, *req.RoomID, bookingID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BookingRoomResponse{RoomID: booking.RoomID})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
