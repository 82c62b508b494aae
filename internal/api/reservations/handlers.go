// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/booking"
	"github.com/codr1/courtbook/internal/models"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

// Writes may wait on resource locks, so they get more room than reads.
const (
	reservationQueryTimeout = 5 * time.Second
	reservationWriteTimeout = 15 * time.Second
)

// Admin requests act with this identity. Authentication sits in front of
// the service, not in it.
var adminActor = booking.Actor{ID: "admin", Admin: true}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

func loadService(w http.ResponseWriter, r *http.Request) *booking.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return service
}

type cancelRequest struct {
	CustomerID string `json:"customerId" validate:"required,max=100"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var req booking.CreateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationWriteTimeout)
	defer cancel()

	reservation, err := svc.Create(ctx, req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, reservation); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write reservation response")
	}
}

// GET /api/v1/reservations?customer_id=
func HandleReservationsList(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	customerID := strings.TrimSpace(r.URL.Query().Get("customer_id"))

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	list, err := svc.ListForCustomer(ctx, customerID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"reservations": list}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write reservations response")
	}
}

// GET /api/v1/reservations/{id}
func HandleReservationGet(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	reservation, err := svc.Get(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write reservation response")
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req cancelRequest
	if err := apiutil.DecodeAndValidate(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationWriteTimeout)
	defer cancel()

	reservation, err := svc.Cancel(ctx, id, booking.Actor{ID: req.CustomerID})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write cancellation response")
	}
}

// PUT /api/v1/admin/reservations/{id}/status
func HandleAdminStatusUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req statusRequest
	if err := apiutil.DecodeAndValidate(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationWriteTimeout)
	defer cancel()

	reservation, err := svc.UpdateStatus(ctx, id, models.ReservationStatus(req.Status), adminActor)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write status response")
	}
}

// PUT /api/v1/admin/reservations/{id}/payment-status
func HandleAdminPaymentStatusUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req paymentStatusRequest
	if err := apiutil.DecodeAndValidate(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationWriteTimeout)
	defer cancel()

	reservation, err := svc.UpdatePaymentStatus(ctx, id, models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write payment status response")
	}
}

// DELETE /api/v1/admin/reservations/{id}
func HandleAdminReservationDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationWriteTimeout)
	defer cancel()

	if err := svc.Delete(ctx, id, adminActor); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
