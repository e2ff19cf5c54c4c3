package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

type Unit struct{}

type CommandError struct {
	Payload    interface{}
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, payload interface{}, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Payload:    payload,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

func (e CommandError) Error() string {
	var values struct {
		Payload    interface{}
		StatusCode int
		Reason     string
	}

	values.Payload = e.Payload
	values.StatusCode = e.StatusCode

	if e.Reason != nil {
		values.Reason = *e.Reason
	}

	return fmt.Sprintf("%+v", values)
}

func (e CommandError) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}

	return nil
}

// MarshalJSON renders the error the same way the API renders any other failure.
// A ValidationError payload keeps its field messages.
func (e CommandError) MarshalJSON() ([]byte, error) {
	var validationErr ValidationError
	if errors.As(e, &validationErr) {
		return json.Marshal(validationErr)
	}

	message := ""
	switch {
	case e.Reason != nil:
		message = *e.Reason
	case e.Payload != nil:
		if err, ok := e.Payload.(error); ok {
			message = err.Error()
		} else {
			message = fmt.Sprintf("%v", e.Payload)
		}
	}

	return json.Marshal(errorBody{Code: e.StatusCode, Message: message})
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
