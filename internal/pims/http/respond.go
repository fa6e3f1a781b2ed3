package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
	"github.com/sindh-police/spims/pkg/slogx"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON parses the request body into dst and runs struct validation.
// A false return means the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		httpx.Fail(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage turns the first validator failure into a message safe to
// show the caller.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// writeServiceError maps service-layer failures onto the wire contract.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var (
		vErr *service.ValidationError
		dErr *service.DuplicateError
		qErr *service.QuotaExceededError
	)
	switch {
	case errors.As(err, &vErr):
		httpx.Fail(w, http.StatusBadRequest, vErr.Message)
	case errors.As(err, &dErr):
		httpx.FailConflict(w, duplicateMessage(dErr.Field), dErr.Field)
	case errors.As(err, &qErr):
		httpx.Fail(w, http.StatusBadRequest,
			fmt.Sprintf("maximum number of %s accounts (%d) has been reached", qErr.Role, qErr.Limit))
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Fail(w, http.StatusUnauthorized, "incorrect username or password")
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.Fail(w, http.StatusBadRequest, "token is invalid or has expired")
	case errors.Is(err, service.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "no record found with that ID")
	default:
		log.Error("request failed", "err", err)
		httpx.Fail(w, http.StatusInternalServerError, "something went very wrong")
	}
}

func duplicateMessage(field string) string {
	if field == "" {
		return "an account with these details already exists"
	}
	return fmt.Sprintf("an account with this %s already exists", field)
}
