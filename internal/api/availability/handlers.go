// internal/api/availability/handlers.go
package availability

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/booking"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

const availabilityQueryTimeout = 5 * time.Second

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

// timeRange reads start_time and end_time in the facility's zone.
func timeRange(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	query := r.URL.Query()
	start, err := apiutil.ParseTimeField(query.Get("start_time"), "start_time", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := apiutil.ParseTimeField(query.Get("end_time"), "end_time", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// GET /api/v1/availability/courts/{id}?date=&duration=
func HandleCourtSlots(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	loc := svc.Config().Location

	courtID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	date, err := apiutil.ParseDateField(r.URL.Query().Get("date"), "date", loc)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	duration, err := apiutil.ParsePositiveFloatField(r.URL.Query().Get("duration"), "duration", 1)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	slots, err := svc.CheckAvailability(ctx, courtID, date, duration)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"courtId":  courtID,
		"date":     date.Format("2006-01-02"),
		"duration": duration,
		"slots":    slots,
	}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write slots response")
	}
}

// GET /api/v1/availability/coaches/{id}?start_time=&end_time=
func HandleCoachCheck(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	coachID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	start, end, err := timeRange(r, svc.Config().Location)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	check, err := svc.CheckCoachAvailability(ctx, coachID, start, end)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, check); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write coach availability response")
	}
}

// GET /api/v1/availability/coaches?court_id=&start_time=&end_time=
func HandleAvailableCoaches(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.URL.Query().Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	start, end, err := timeRange(r, svc.Config().Location)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	coaches, err := svc.AvailableCoaches(ctx, courtID, start, end)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"coaches": coaches}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write coaches response")
	}
}

// GET /api/v1/availability/equipment?start_time=&end_time=&type=
func HandleEquipmentPreview(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	start, end, err := timeRange(r, svc.Config().Location)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	equipmentType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))

	ctx, cancel := context.WithTimeout(r.Context(), availabilityQueryTimeout)
	defer cancel()

	preview, err := svc.EquipmentPreview(ctx, start, end, equipmentType)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, preview); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write equipment preview")
	}
}
