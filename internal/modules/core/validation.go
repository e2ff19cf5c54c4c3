package core

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/eskrenkovic/mediator-go"
)

type Validator interface {
	Validate() error
}

// ValidationError maps field names to the messages describing what is wrong with them.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func NewValidationError(message string) ValidationError {
	return ValidationError{Message: message, Fields: make(map[string][]string)}
}

func (e ValidationError) Add(field, message string) ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(e.Message)
	for _, field := range fields {
		for _, message := range e.Fields[field] {
			b.WriteString(" '")
			b.WriteString(field)
			b.WriteString(": ")
			b.WriteString(message)
			b.WriteString("'")
		}
	}
	return b.String()
}

func (e ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}{
		Code:    http.StatusBadRequest,
		Message: e.Message,
		Errors:  e.Fields,
	})
}

var _ mediator.PipelineBehavior = (*RequestValidationBehavior)(nil)

type RequestValidationBehavior struct{}

func (b *RequestValidationBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	if request, ok := request.(Validator); ok {
		if err := request.Validate(); err != nil {
			return nil, NewCommandError(http.StatusBadRequest, err, WithReason("request validation failed"))
		}
	}

	return next(ctx, request)
}
