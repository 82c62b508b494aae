// cmd/server/server.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api"
	"github.com/codr1/courtbook/internal/api/admin"
	"github.com/codr1/courtbook/internal/api/availability"
	"github.com/codr1/courtbook/internal/api/quotes"
	"github.com/codr1/courtbook/internal/api/reservations"
	"github.com/codr1/courtbook/internal/booking"
	"github.com/codr1/courtbook/internal/catalog"
	"github.com/codr1/courtbook/internal/config"
	appdb "github.com/codr1/courtbook/internal/db"
	"github.com/codr1/courtbook/internal/email"
	"github.com/codr1/courtbook/internal/events"
	"github.com/codr1/courtbook/internal/lock"
	"github.com/codr1/courtbook/internal/ratelimit"
	"github.com/codr1/courtbook/internal/scheduler"
)

type app struct {
	server    *http.Server
	scheduler *scheduler.Service
	closers   []func() error
}

func (a *app) close() {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(); err != nil {
			log.Warn().Err(err).Msg("Failed to stop scheduler")
		}
	}
	// Release in reverse order of acquisition.
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("Failed to release resource")
		}
	}
}

// newApp opens the database and connects the optional backends. Anything it
// opened is released by close, including on a failed start.
func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	database, err := appdb.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, database.Close)

	bookingCfg, err := booking.ConfigFrom(cfg)
	if err != nil {
		return nil, err
	}
	opts := []booking.Option{}

	switch cfg.Locking.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Locking.RedisAddr,
			Password: cfg.Locking.RedisPass,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		opts = append(opts, booking.WithLocker(lock.NewRedisLocker(client, cfg.Locking.LeaseTTL)))
		log.Info().Str("addr", cfg.Locking.RedisAddr).Msg("Using redis resource locks")
	default:
		log.Info().Msg("Using in-process resource locks")
	}

	if cfg.Events.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return nil, fmt.Errorf("connect amqp: %w", err)
		}
		a.closers = append(a.closers, publisher.Close)
		opts = append(opts, booking.WithPublisher(publisher))
		log.Info().Str("exchange", cfg.Events.Exchange).Msg("Publishing reservation events")
	}

	if cfg.Email.Sender != "" {
		sesClient, err := email.NewSESClient(ctx, cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			return nil, fmt.Errorf("create ses client: %w", err)
		}
		notifier := email.NewNotifier(sesClient, cfg.App.Name, cfg.Location())
		a.closers = append(a.closers, notifier.Close)
		opts = append(opts, booking.WithNotifier(notifier))
	}

	bookingSvc := booking.NewService(database, bookingCfg, opts...)
	catalogSvc := catalog.NewService(database)

	a.scheduler, err = scheduler.New()
	if err != nil {
		return nil, err
	}
	if cfg.Scheduler.AutoComplete {
		if err := scheduler.RegisterAutoComplete(a.scheduler, bookingSvc, cfg.Scheduler.AutoCompleteCron, time.Now); err != nil {
			return nil, err
		}
	}

	limiter := ratelimit.New(&ratelimit.Config{
		WritesPerMinute: cfg.RateLimit.WritesPerMinute,
		Burst:           cfg.RateLimit.Burst,
		TrustProxy:      cfg.RateLimit.TrustProxy,
	})
	a.closers = append(a.closers, func() error {
		limiter.Close()
		return nil
	})

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      newHandler(cfg, bookingSvc, catalogSvc, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

func newHandler(cfg *config.Config, bookingSvc *booking.Service, catalogSvc *catalog.Service, limiter *ratelimit.Limiter) http.Handler {
	reservations.InitHandlers(bookingSvc)
	availability.InitHandlers(bookingSvc)
	quotes.InitHandlers(bookingSvc)
	admin.InitHandlers(catalogSvc)

	router := http.NewServeMux()
	registerRoutes(router, cfg)

	// Setup middleware chain
	return api.ChainMiddleware(
		router,
		limiter.Middleware,
		api.WithMetrics,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Reservation routes
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleReservationsList)
	mux.HandleFunc("GET /api/v1/reservations/{id}", reservations.HandleReservationGet)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel)

	// Availability routes
	mux.HandleFunc("GET /api/v1/availability/courts/{id}", availability.HandleCourtSlots)
	mux.HandleFunc("GET /api/v1/availability/coaches/{id}", availability.HandleCoachCheck)
	mux.HandleFunc("GET /api/v1/availability/coaches", availability.HandleAvailableCoaches)
	mux.HandleFunc("GET /api/v1/availability/equipment", availability.HandleEquipmentPreview)
	mux.HandleFunc("POST /api/v1/quotes", quotes.HandleQuote)

	// Catalog reads
	mux.HandleFunc("GET /api/v1/courts", admin.HandleCourtsList)
	mux.HandleFunc("GET /api/v1/coaches", admin.HandleCoachesList)
	mux.HandleFunc("GET /api/v1/equipment", admin.HandleEquipmentList)

	// Admin routes
	mux.HandleFunc("PUT /api/v1/admin/reservations/{id}/status", reservations.HandleAdminStatusUpdate)
	mux.HandleFunc("PUT /api/v1/admin/reservations/{id}/payment-status", reservations.HandleAdminPaymentStatusUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/reservations/{id}", reservations.HandleAdminReservationDelete)

	mux.HandleFunc("POST /api/v1/admin/courts", admin.HandleCourtCreate)
	mux.HandleFunc("PUT /api/v1/admin/courts/{id}", admin.HandleCourtUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/courts/{id}", admin.HandleCourtDelete)
	mux.HandleFunc("POST /api/v1/admin/coaches", admin.HandleCoachCreate)
	mux.HandleFunc("PUT /api/v1/admin/coaches/{id}", admin.HandleCoachUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/coaches/{id}", admin.HandleCoachDelete)
	mux.HandleFunc("POST /api/v1/admin/equipment", admin.HandleEquipmentCreate)
	mux.HandleFunc("PUT /api/v1/admin/equipment/{id}", admin.HandleEquipmentUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/equipment/{id}", admin.HandleEquipmentDelete)

	mux.HandleFunc("GET /api/v1/admin/pricing-rules", admin.HandleRulesList)
	mux.HandleFunc("GET /api/v1/admin/pricing-rules/{id}", admin.HandleRuleGet)
	mux.HandleFunc("POST /api/v1/admin/pricing-rules", admin.HandleRuleCreate)
	mux.HandleFunc("PUT /api/v1/admin/pricing-rules/{id}", admin.HandleRuleUpdate)
	mux.HandleFunc("DELETE /api/v1/admin/pricing-rules/{id}", admin.HandleRuleDelete)
}
