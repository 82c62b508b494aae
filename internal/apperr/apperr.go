// Package apperr defines the structured rejections returned by the booking
// core. Any error that is not an *Error is an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InvalidInput        Kind = "invalid_input"
	ResourceUnavailable Kind = "resource_unavailable"
	InventoryShortage   Kind = "inventory_shortage"
	PolicyViolation     Kind = "policy_violation"
	NotFound            Kind = "not_found"
)

// Shortage reports one equipment line that could not be satisfied.
type Shortage struct {
	ItemID    int64 `json:"itemId"`
	Requested int64 `json:"requested"`
	Available int64 `json:"available"`
}

type Error struct {
	Kind   Kind
	Code   string
	Detail string

	Shortages      []Shortage
	HoursRemaining *float64
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Detail)
}

func New(kind Kind, code, detail string) *Error {
	return &Error{Kind: kind, Code: code, Detail: detail}
}

func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Shortfall builds an InventoryShortage carrying every unsatisfied line.
func Shortfall(shortages []Shortage) *Error {
	return &Error{
		Kind:      InventoryShortage,
		Code:      "insufficient_equipment",
		Detail:    fmt.Sprintf("%d equipment line(s) cannot be satisfied", len(shortages)),
		Shortages: shortages,
	}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
