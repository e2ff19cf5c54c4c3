package projection

import (
	"context"
	"database/sql"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

var _ eventsourcing.Projector = (*ProductDraftValueRemovedEventProjector)(nil)

// ProductDraftValueRemovedEventProjector drops the rows of a removed value.
// Removing a value that has no rows is not an error.
type ProductDraftValueRemovedEventProjector struct {
	db *sql.DB
}

func NewProductDraftValueRemovedEventProjector(db *sql.DB) *ProductDraftValueRemovedEventProjector {
	return &ProductDraftValueRemovedEventProjector{db}
}

func (p *ProductDraftValueRemovedEventProjector) Supports(event eventsourcing.DomainEvent) bool {
	_, ok := event.(domain.ProductDraftValueRemoved)
	return ok
}

func (p *ProductDraftValueRemovedEventProjector) Project(
	ctx context.Context,
	aggregateID uuid.UUID,
	event eventsourcing.DomainEvent,
) error {
	removed, ok := event.(domain.ProductDraftValueRemoved)
	if !ok {
		return &eventsourcing.UnsupportedEventError{Event: event, Expected: domain.ProductDraftValueRemovedEvent}
	}

	draftID := domain.ProductDraftID{UUID: aggregateID}
	elementID := attributedomain.AttributeIDFromKey(removed.AttributeCode)

	err := core.Tx(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tql.Exec(ctx, tx, deleteDraftValue, draftID.UUID, elementID.UUID)
		return err
	})
	if err != nil {
		return eventsourcing.NewProjectorError(event, err)
	}

	return nil
}
