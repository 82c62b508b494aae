// internal/api/quotes/handlers.go
package quotes

import (
	"context"
	"net/http"
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

const quoteTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

// POST /api/v1/quotes
func HandleQuote(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if service == nil {
		logger.Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req booking.QuoteRequest
	if err := apiutil.DecodeAndValidate(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), quoteTimeout)
	defer cancel()

	breakdown, err := service.Quote(ctx, req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, breakdown); err != nil {
		logger.Error().Err(err).Msg("Failed to write quote response")
	}
}
