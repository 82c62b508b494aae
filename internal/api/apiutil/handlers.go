package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/catalog"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error          string            `json:"error"`
	Code           string            `json:"code,omitempty"`
	Message        string            `json:"message"`
	Shortages      []apperr.Shortage `json:"shortages,omitempty"`
	HoursRemaining *float64          `json:"hoursRemaining,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// DecodeAndValidate decodes a JSON body and runs its validate tags. Both
// failures come back as InvalidInput errors ready for WriteError.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return apperr.New(apperr.InvalidInput, "invalid_json", err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return apperr.New(apperr.InvalidInput, "invalid_field", catalog.FieldMessage(fieldErrs[0]))
		}
		return apperr.New(apperr.InvalidInput, "invalid_field", err.Error())
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// StatusFor maps a rejection kind to its HTTP status.
func StatusFor(e *apperr.Error) int {
	switch e.Kind {
	case apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.ResourceUnavailable, apperr.InventoryShortage:
		return http.StatusConflict
	case apperr.PolicyViolation:
		if e.Code == "not_owner" {
			return http.StatusForbidden
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// WriteError renders err as a JSON error body. Errors that are not rejections
// are logged and reported without detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		if handlerErr.Status >= http.StatusInternalServerError {
			logger.Error().Err(handlerErr.Err).Msg(handlerErr.Message)
		}
		writeErrorBody(w, handlerErr.Status, ErrorResponse{
			Error:   http.StatusText(handlerErr.Status),
			Message: handlerErr.Message,
		})
		return
	}

	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		writeErrorBody(w, http.StatusBadRequest, ErrorResponse{
			Error:   string(apperr.InvalidInput),
			Code:    "invalid_field",
			Message: fieldErr.Error(),
		})
		return
	}

	appErr, ok := apperr.As(err)
	if !ok {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		writeErrorBody(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
		return
	}

	logger.Debug().Str("kind", string(appErr.Kind)).Str("code", appErr.Code).Msg("Request rejected")
	writeErrorBody(w, StatusFor(appErr), ErrorResponse{
		Error:          string(appErr.Kind),
		Code:           appErr.Code,
		Message:        appErr.Detail,
		Shortages:      appErr.Shortages,
		HoursRemaining: appErr.HoursRemaining,
	})
}

func writeErrorBody(w http.ResponseWriter, status int, body ErrorResponse) {
	_ = WriteJSON(w, status, body)
}
