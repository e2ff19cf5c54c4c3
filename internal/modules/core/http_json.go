package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

func RequestBody[TRequest any](r *http.Request) (TRequest, error) {
	var request TRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	return request, err
}

type ResponseOption func(http.ResponseWriter, *http.Request)

func WithHeader(header, value string) ResponseOption {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add(header, value)
	}
}

type createdBody struct {
	ID string `json:"id"`
}

func WriteOK(w http.ResponseWriter, r *http.Request, body interface{}) {
	WriteResponse(w, r, http.StatusOK, body)
}

func WriteCreated(w http.ResponseWriter, r *http.Request, id string, location string) {
	WriteResponse(w, r, http.StatusCreated, createdBody{ID: id}, WithHeader("Location", location))
}

func WriteNoContent(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, r, http.StatusNoContent, nil)
}

func WriteBadRequest(w http.ResponseWriter, r *http.Request, body interface{}) {
	WriteResponse(w, r, http.StatusBadRequest, body)
}

func WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	WriteResponse(w, r, http.StatusNotFound, errorBody{Code: http.StatusNotFound, Message: message})
}

func WriteUnauthorized(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, r, http.StatusUnauthorized, errorBody{Code: http.StatusUnauthorized, Message: "unauthorized"})
}

func WriteForbidden(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, r, http.StatusForbidden, errorBody{Code: http.StatusForbidden, Message: "access denied"})
}

// WriteError picks the status code from err: CommandError carries its own,
// ValidationError is 400, anything wrapping ErrNotFound is 404 and the rest 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var commandErr CommandError
	var validationErr ValidationError

	switch {
	case errors.As(err, &commandErr):
		WriteResponse(w, r, commandErr.StatusCode, commandErr)
	case errors.As(err, &validationErr):
		WriteResponse(w, r, http.StatusBadRequest, validationErr)
	case errors.Is(err, ErrNotFound):
		WriteNotFound(w, r, err.Error())
	default:
		LogError(r.Context(), "request failed", zap.Error(err))
		WriteResponse(
			w,
			r,
			http.StatusInternalServerError,
			errorBody{Code: http.StatusInternalServerError, Message: "internal server error"},
		)
	}
}

func WriteResponse(
	w http.ResponseWriter,
	r *http.Request,
	statusCode int,
	body interface{},
	opts ...ResponseOption,
) {
	for _, opt := range opts {
		opt(w, r)
	}

	if body != nil {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(statusCode)
	writeBodyIfPresent(r.Context(), w, statusCode, body)
}

func writeBodyIfPresent(ctx context.Context, w http.ResponseWriter, statusCode int, body interface{}) {
	if body == nil {
		return
	}

	// Plain errors marshal into an empty object.
	if err, ok := body.(error); ok {
		if _, isMarshaler := body.(json.Marshaler); !isMarshaler {
			body = errorBody{Code: statusCode, Message: err.Error()}
		}
	}

	responseBytes, err := json.Marshal(body)
	if err != nil {
		LogError(ctx, "failed to serialize response", zap.Error(err))
		return
	}

	if _, err := w.Write(responseBytes); err != nil {
		LogError(ctx, "failed to write response", zap.Error(err))
	}
}
