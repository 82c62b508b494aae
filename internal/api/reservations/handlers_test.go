package reservations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/booking"
	dbgen "github.com/codr1/courtbook/internal/db/generated"
	"github.com/codr1/courtbook/internal/models"
	"github.com/codr1/courtbook/internal/testutil"
)

// Friday 13 June 2025, 09:00 UTC.
var now = time.Date(2025, time.June, 13, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newMux(t *testing.T) (*http.ServeMux, dbgen.Court) {
	t.Helper()
	database := testutil.NewTestDB(t)
	court := testutil.SeedCourt(t, database, "Centre", "tennis", 2000)

	service = booking.NewService(database, booking.DefaultConfig(), booking.WithClock(fixedClock{now}))
	t.Cleanup(func() { service = nil })

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/reservations", HandleReservationCreate)
	mux.HandleFunc("GET /api/v1/reservations", HandleReservationsList)
	mux.HandleFunc("GET /api/v1/reservations/{id}", HandleReservationGet)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", HandleReservationCancel)
	mux.HandleFunc("PUT /api/v1/admin/reservations/{id}/status", HandleAdminStatusUpdate)
	mux.HandleFunc("PUT /api/v1/admin/reservations/{id}/payment-status", HandleAdminPaymentStatusUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/reservations/{id}", HandleAdminReservationDelete)
	return mux, court
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createBody(courtID int64, customer string, start time.Time) string {
	return fmt.Sprintf(`{"customerId":%q,"courtId":%d,"startTime":%q,"endTime":%q}`,
		customer, courtID, start.Format(time.RFC3339), start.Add(time.Hour).Format(time.RFC3339))
}

func decodeReservation(t *testing.T, rec *httptest.ResponseRecorder) models.Reservation {
	t.Helper()
	var r models.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiutil.ErrorResponse {
	t.Helper()
	var body apiutil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateGetAndList(t *testing.T) {
	mux, court := newMux(t)
	start := now.Add(48 * time.Hour)

	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "cust-1", start))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeReservation(t, rec)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.Equal(t, int64(2000), created.Pricing.BasePrice)

	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decodeReservation(t, rec).ID)

	rec = do(t, mux, http.MethodGet, "/api/v1/reservations?customer_id=cust-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Reservations []models.Reservation `json:"reservations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Reservations, 1)
}

func TestCreateConflictIs409(t *testing.T) {
	mux, court := newMux(t)
	start := now.Add(48 * time.Hour)

	require.Equal(t, http.StatusCreated, do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "a", start)).Code)

	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "b", start.Add(30*time.Minute)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "court_unavailable", decodeError(t, rec).Code)
}

func TestCreateRejectsBadBodies(t *testing.T) {
	mux, court := newMux(t)

	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", `{"courtId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "a", now.Add(-time.Hour)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "start_in_past", decodeError(t, rec).Code)

	rec = do(t, mux, http.MethodGet, "/api/v1/reservations/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/v1/reservations/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelByOwnerAndStranger(t *testing.T) {
	mux, court := newMux(t)
	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "owner", now.Add(48*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeReservation(t, rec).ID
	target := fmt.Sprintf("/api/v1/reservations/%d/cancel", id)

	rec = do(t, mux, http.MethodPost, target, `{"customerId":"stranger"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, mux, http.MethodPost, target, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, target, `{"customerId":"owner"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusCancelled, decodeReservation(t, rec).Status)

	rec = do(t, mux, http.MethodPost, target, `{"customerId":"owner"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "already_cancelled", decodeError(t, rec).Code)
}

func TestCancelInsideGraceWindowReportsHours(t *testing.T) {
	mux, court := newMux(t)
	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "owner", now.Add(90*time.Minute)))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeReservation(t, rec).ID

	rec = do(t, mux, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", id), `{"customerId":"owner"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "cancellation_window", body.Code)
	require.NotNil(t, body.HoursRemaining)
	assert.Equal(t, 1.5, *body.HoursRemaining)
}

func TestAdminOperations(t *testing.T) {
	mux, court := newMux(t)
	rec := do(t, mux, http.MethodPost, "/api/v1/reservations", createBody(court.ID, "owner", now.Add(48*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeReservation(t, rec).ID

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/v1/admin/reservations/%d/payment-status", id), `{"paymentStatus":"paid"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentPaid, decodeReservation(t, rec).PaymentStatus)

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/v1/admin/reservations/%d/payment-status", id), `{"paymentStatus":"bitcoin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/v1/admin/reservations/%d/status", id), `{"status":"pending"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, rec).Code)

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/v1/admin/reservations/%d/status", id), `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/v1/admin/reservations/%d/status", id), `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusConfirmed, decodeReservation(t, rec).Status)

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/api/v1/admin/reservations/%d", id), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/api/v1/admin/reservations/%d", id), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUninitializedServiceIs500(t *testing.T) {
	service = nil
	rec := httptest.NewRecorder()
	HandleReservationGet(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations/1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
