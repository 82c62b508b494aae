// internal/api/admin/handlers.go
package admin

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/catalog"
)

var (
	service     *catalog.Service
	serviceOnce sync.Once
)

const adminQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *catalog.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

func loadService(w http.ResponseWriter, r *http.Request) *catalog.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Catalog service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return service
}

func respond(w http.ResponseWriter, r *http.Request, status int, payload any, err error) {
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to write response")
	}
}

// GET /api/v1/courts
func HandleCourtsList(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	courts, err := svc.ListCourts(ctx)
	respond(w, r, http.StatusOK, map[string]any{"courts": courts}, err)
}

// POST /api/v1/admin/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var in catalog.CourtInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	court, err := svc.CreateCourt(ctx, in)
	respond(w, r, http.StatusCreated, court, err)
}

// PUT /api/v1/admin/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var in catalog.CourtInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	court, err := svc.UpdateCourt(ctx, id, in)
	respond(w, r, http.StatusOK, court, err)
}

// DELETE /api/v1/admin/courts/{id}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	if err := svc.DeleteCourt(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/coaches
func HandleCoachesList(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	coaches, err := svc.ListCoaches(ctx)
	respond(w, r, http.StatusOK, map[string]any{"coaches": coaches}, err)
}

// POST /api/v1/admin/coaches
func HandleCoachCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var in catalog.CoachInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	coach, err := svc.CreateCoach(ctx, in)
	respond(w, r, http.StatusCreated, coach, err)
}

// PUT /api/v1/admin/coaches/{id}
func HandleCoachUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var in catalog.CoachInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	coach, err := svc.UpdateCoach(ctx, id, in)
	respond(w, r, http.StatusOK, coach, err)
}

// DELETE /api/v1/admin/coaches/{id}
func HandleCoachDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	if err := svc.DeleteCoach(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/equipment?type=
func HandleEquipmentList(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	equipmentType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))

	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	items, err := svc.ListEquipment(ctx, equipmentType)
	respond(w, r, http.StatusOK, map[string]any{"equipment": items}, err)
}

// POST /api/v1/admin/equipment
func HandleEquipmentCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var in catalog.EquipmentInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	item, err := svc.CreateEquipment(ctx, in)
	respond(w, r, http.StatusCreated, item, err)
}

// PUT /api/v1/admin/equipment/{id}
func HandleEquipmentUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var in catalog.EquipmentInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	item, err := svc.UpdateEquipment(ctx, id, in)
	respond(w, r, http.StatusOK, item, err)
}

// DELETE /api/v1/admin/equipment/{id}
func HandleEquipmentDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	if err := svc.DeleteEquipment(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
