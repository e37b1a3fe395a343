package utils

import (
	"Staffline/internal/logging"
	"encoding/json"
	"errors"
	"net/http"
)

var ErrResourceNotFound = errors.New("not found")
var ErrHttpBadRequest = errors.New("bad request")
var ErrHttpConflict = errors.New("conflict")

const InternalServerErrorMessage = "Internal server error."

// HttpError is an error whose message is safe to show to clients.
// Kind decides the status code, see HandleHttpError.
type HttpError struct {
	Message string
	Kind    error
}

func (e *HttpError) Error() string {
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Kind
}

func BadRequest(message string) *HttpError {
	return &HttpError{
		Message: message,
		Kind:    ErrHttpBadRequest,
	}
}

func NotFound(message string) *HttpError {
	return &HttpError{
		Message: message,
		Kind:    ErrResourceNotFound,
	}
}

type ErrorResponseDto struct {
	Error string `json:"error"`
}

func HandleHttpError(w http.ResponseWriter, err error) {
	var status int
	var msg string

	var httpErr *HttpError
	switch {
	case errors.As(err, &httpErr) && errors.Is(httpErr.Kind, ErrHttpBadRequest):
		status = http.StatusBadRequest
		msg = httpErr.Message

	case errors.As(err, &httpErr) && errors.Is(httpErr.Kind, ErrResourceNotFound):
		status = http.StatusNotFound
		msg = httpErr.Message

	default:
		status = http.StatusInternalServerError
		msg = InternalServerErrorMessage
		logging.Logger.Errorf("request failed: %v", err)
	}

	WriteJson(w, status, ErrorResponseDto{Error: msg})
}

func WriteJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logging.Logger.Errorf("writing response body: %v", err)
	}
}

func PanicOnError(f func() error, msg string) {
	err := f()
	if err != nil {
		logging.Logger.Fatalf("%s: %v", msg, err)
	}
}
