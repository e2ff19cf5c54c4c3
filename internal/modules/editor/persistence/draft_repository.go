package persistence

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/google/uuid"
)

type EventStore interface {
	Load(ctx context.Context, aggregateID uuid.UUID) ([]eventsourcing.Envelope, error)
	Append(
		ctx context.Context,
		aggregateID uuid.UUID,
		expectedSequence int,
		events []eventsourcing.DomainEvent,
	) ([]eventsourcing.Envelope, error)
}

var _ domain.DraftRepository = (*EventSourcedDraftRepository)(nil)

// EventSourcedDraftRepository stores drafts as event streams and publishes
// every appended event so the projections catch up.
type EventSourcedDraftRepository struct {
	store     EventStore
	publisher eventsourcing.Publisher
}

func NewEventSourcedDraftRepository(
	store EventStore,
	publisher eventsourcing.Publisher,
) *EventSourcedDraftRepository {
	return &EventSourcedDraftRepository{store: store, publisher: publisher}
}

func (r *EventSourcedDraftRepository) Load(ctx context.Context, id domain.ProductDraftID) (*domain.ProductDraft, error) {
	envelopes, err := r.store.Load(ctx, id.UUID)
	if err != nil {
		return nil, err
	}

	draft, err := domain.LoadProductDraft(envelopes)
	if err != nil {
		return nil, fmt.Errorf("product draft %s: %w", id.String(), err)
	}

	return draft, nil
}

func (r *EventSourcedDraftRepository) Save(ctx context.Context, draft *domain.ProductDraft) error {
	changes := draft.Changes()
	if len(changes) == 0 {
		return nil
	}

	envelopes, err := r.store.Append(ctx, draft.ID().UUID, draft.Version(), changes)
	if err != nil {
		return err
	}

	draft.Committed(envelopes[len(envelopes)-1].Sequence)

	return r.publisher.Publish(ctx, envelopes...)
}
