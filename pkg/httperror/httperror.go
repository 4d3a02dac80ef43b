package httperror

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

// StatusInvalidToken is the non-standard code used for missing, malformed
// or unverifiable bearer tokens.
const StatusInvalidToken = 498

// Error is the single error type every layer of the service produces.
// Status drives the HTTP mapping, StatusMessage is the public text and
// Details is internal context that only reaches the logs.
type Error struct {
	Status        int    `json:"status"`
	StatusMessage string `json:"statusMessage"`
	Details       string `json:"-"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.StatusMessage + ": " + e.Details
	}
	return e.StatusMessage
}

func NewInvalidToken(details string) *Error {
	return &Error{Status: StatusInvalidToken, StatusMessage: "Invalid Token", Details: details}
}

func NewUnauthorized(details string) *Error {
	return &Error{Status: http.StatusUnauthorized, StatusMessage: "Unauthorized", Details: details}
}

func NewBadRequest(details string) *Error {
	return &Error{Status: http.StatusBadRequest, StatusMessage: "Bad request", Details: details}
}

func NewNotFound(details string) *Error {
	return &Error{Status: http.StatusNotFound, StatusMessage: "Not found", Details: details}
}

func NewNotAllowed(details string) *Error {
	return &Error{Status: http.StatusMethodNotAllowed, StatusMessage: "Not allowed", Details: details}
}

func NewInternal(details string) *Error {
	return &Error{Status: http.StatusInternalServerError, StatusMessage: "Internal server error", Details: details}
}

type envelope struct {
	Error []Error `json:"error"`
}

// Write maps any error to the JSON error envelope. Errors that are not an
// *Error default to 500 without exposing their message.
func Write(w http.ResponseWriter, err error) {
	var httpErr *Error
	if !errors.As(err, &httpErr) {
		logrus.WithError(err).Error("Unclassified error reached the error writer")
		httpErr = NewInternal(err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	json.NewEncoder(w).Encode(envelope{Error: []Error{*httpErr}})
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	var httpErr *Error
	return errors.As(err, &httpErr) && httpErr.Status == status
}
