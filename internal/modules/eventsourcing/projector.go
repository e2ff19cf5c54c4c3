package eventsourcing

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Projector keeps a read model in sync with one or more event types.
type Projector interface {
	Supports(event DomainEvent) bool
	Project(ctx context.Context, aggregateID uuid.UUID, event DomainEvent) error
}

// ProjectorError reports a failed projection of Event.
type ProjectorError struct {
	Event DomainEvent
	Err   error
}

func NewProjectorError(event DomainEvent, err error) *ProjectorError {
	return &ProjectorError{Event: event, Err: err}
}

func (e *ProjectorError) Error() string {
	return fmt.Sprintf("projection of event '%s' failed: %s", e.Event.EventType(), e.Err.Error())
}

func (e *ProjectorError) Unwrap() error {
	return e.Err
}

type UnsupportedEventError struct {
	Event    DomainEvent
	Expected EventType
}

func (e *UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event '%s', expected '%s'", e.Event.EventType(), e.Expected)
}

var _ mediator.NotificationHandler[Envelope] = (*ProjectionHandler)(nil)

// ProjectionHandler runs every projector supporting the published event, in
// registration order, and stops at the first failure.
type ProjectionHandler struct {
	projectors []Projector
	logger     *zap.Logger
}

func NewProjectionHandler(logger *zap.Logger, projectors ...Projector) *ProjectionHandler {
	return &ProjectionHandler{projectors: projectors, logger: logger}
}

func (h *ProjectionHandler) Handle(ctx context.Context, envelope Envelope) error {
	for _, projector := range h.projectors {
		if !projector.Supports(envelope.Event) {
			continue
		}

		if err := projector.Project(ctx, envelope.AggregateID, envelope.Event); err != nil {
			h.logger.Error(
				"projection failed",
				zap.String("aggregate_id", envelope.AggregateID.String()),
				zap.Int("sequence", envelope.Sequence),
				zap.String("event_type", envelope.Event.EventType()),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

type Publisher interface {
	Publish(ctx context.Context, envelopes ...Envelope) error
}

var _ Publisher = MediatorPublisher{}

// MediatorPublisher publishes envelopes as mediator notifications.
type MediatorPublisher struct{}

func (MediatorPublisher) Publish(ctx context.Context, envelopes ...Envelope) error {
	for _, envelope := range envelopes {
		if err := mediator.Publish[Envelope](ctx, envelope); err != nil {
			return err
		}
	}

	return nil
}
