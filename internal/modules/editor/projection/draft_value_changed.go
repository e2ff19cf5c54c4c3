package projection

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/google/uuid"
)

var _ eventsourcing.Projector = (*ProductDraftValueChangedEventProjector)(nil)

type ProductDraftValueChangedEventProjector struct {
	db *sql.DB
}

func NewProductDraftValueChangedEventProjector(db *sql.DB) *ProductDraftValueChangedEventProjector {
	return &ProductDraftValueChangedEventProjector{db}
}

func (p *ProductDraftValueChangedEventProjector) Supports(event eventsourcing.DomainEvent) bool {
	_, ok := event.(domain.ProductDraftValueChanged)
	return ok
}

func (p *ProductDraftValueChangedEventProjector) Project(
	ctx context.Context,
	aggregateID uuid.UUID,
	event eventsourcing.DomainEvent,
) error {
	changed, ok := event.(domain.ProductDraftValueChanged)
	if !ok {
		return &eventsourcing.UnsupportedEventError{Event: event, Expected: domain.ProductDraftValueChangedEvent}
	}

	err := core.Tx(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		return replaceValue(ctx, tx, aggregateID, changed.AttributeCode, changed.To)
	})
	if err != nil {
		return eventsourcing.NewProjectorError(event, err)
	}

	return nil
}
