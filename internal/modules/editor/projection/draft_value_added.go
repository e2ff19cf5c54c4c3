package projection

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/google/uuid"
)

var _ eventsourcing.Projector = (*ProductDraftValueAddedEventProjector)(nil)

type ProductDraftValueAddedEventProjector struct {
	db *sql.DB
}

func NewProductDraftValueAddedEventProjector(db *sql.DB) *ProductDraftValueAddedEventProjector {
	return &ProductDraftValueAddedEventProjector{db}
}

func (p *ProductDraftValueAddedEventProjector) Supports(event eventsourcing.DomainEvent) bool {
	_, ok := event.(domain.ProductDraftValueAdded)
	return ok
}

func (p *ProductDraftValueAddedEventProjector) Project(
	ctx context.Context,
	aggregateID uuid.UUID,
	event eventsourcing.DomainEvent,
) error {
	added, ok := event.(domain.ProductDraftValueAdded)
	if !ok {
		return &eventsourcing.UnsupportedEventError{Event: event, Expected: domain.ProductDraftValueAddedEvent}
	}

	err := core.Tx(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		return replaceValue(ctx, tx, aggregateID, added.AttributeCode, added.Value)
	})
	if err != nil {
		return eventsourcing.NewProjectorError(event, err)
	}

	return nil
}
