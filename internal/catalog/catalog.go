// Package catalog administers the bookable resources: courts, coaches,
// rental equipment and pricing rules.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-sqlite3"

	"github.com/codr1/courtbook/internal/apperr"
	appdb "github.com/codr1/courtbook/internal/db"
)

type Service struct {
	db       *appdb.DB
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithNow overrides the clock used to decide which bookings are upcoming.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(database *appdb.DB, opts ...Option) *Service {
	s := &Service{
		db:       database,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// check runs struct tag validation and reports the first failing field.
func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}
	return apperr.New(apperr.InvalidInput, "invalid_field", FieldMessage(fieldErrs[0]))
}

// FieldMessage renders a validator failure as a short sentence.
func FieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return field + " must be at most " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// constraintErr turns SQLite constraint failures into rejections. Other
// errors are wrapped with action and returned as internal failures.
func constraintErr(action string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return apperr.New(apperr.InvalidInput, "duplicate", "a record with that name or email already exists")
		case sqlite3.ErrConstraintForeignKey:
			return apperr.New(apperr.InvalidInput, "unknown_reference", "a referenced record does not exist")
		case sqlite3.ErrConstraintCheck:
			return apperr.New(apperr.InvalidInput, "constraint_failed", "value is outside the allowed range")
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}

func notFound(kind string, id int64) *apperr.Error {
	return apperr.Newf(apperr.NotFound, kind+"_not_found", "%s %d not found", kind, id)
}

func inUse(kind string, count int64) *apperr.Error {
	return apperr.Newf(apperr.PolicyViolation, kind+"_in_use",
		"cannot delete %s with %d active reservation(s)", kind, count)
}
