package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	autoCompleteJobName = "reservation_auto_complete"
	autoCompleteBatch   = 200
	autoCompleteTimeout = 2 * time.Minute
)

// Completer marks confirmed reservations that ended by cutoff as completed.
type Completer interface {
	CompleteEnded(ctx context.Context, cutoff time.Time, limit int64) (int, error)
}

// RegisterAutoComplete schedules the sweep that closes out finished
// reservations.
func RegisterAutoComplete(s *Service, completer Completer, cronExpr string, now func() time.Time) error {
	if completer == nil {
		return fmt.Errorf("auto-complete job requires a completer")
	}
	if now == nil {
		now = time.Now
	}
	_, err := s.AddJob(autoCompleteJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoCompleteTimeout)
		defer cancel()
		jobLogger := log.With().Str("job_name", autoCompleteJobName).Logger()
		if _, err := CompleteEnded(jobLogger.WithContext(ctx), completer, now()); err != nil {
			jobLogger.Error().Err(err).Msg("Auto-complete sweep failed")
		}
	})
	return err
}

// CompleteEnded runs sweeps in batches until a batch comes back short or the
// context ends. It returns how many reservations were completed in total.
func CompleteEnded(ctx context.Context, completer Completer, cutoff time.Time) (int, error) {
	total := 0
	for {
		n, err := completer.CompleteEnded(ctx, cutoff, autoCompleteBatch)
		total += n
		if err != nil {
			return total, err
		}
		if n < autoCompleteBatch {
			break
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
	if total > 0 {
		log.Ctx(ctx).Info().Int("completed", total).Msg("Completed ended reservations")
	}
	return total, nil
}
