package projection

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

var _ eventsourcing.Projector = (*ProductDraftAppliedEventProjector)(nil)

type ProductDraftAppliedEventProjector struct {
	db *sql.DB
}

func NewProductDraftAppliedEventProjector(db *sql.DB) *ProductDraftAppliedEventProjector {
	return &ProductDraftAppliedEventProjector{db}
}

func (p *ProductDraftAppliedEventProjector) Supports(event eventsourcing.DomainEvent) bool {
	_, ok := event.(domain.ProductDraftApplied)
	return ok
}

func (p *ProductDraftAppliedEventProjector) Project(
	ctx context.Context,
	aggregateID uuid.UUID,
	event eventsourcing.DomainEvent,
) error {
	if !p.Supports(event) {
		return &eventsourcing.UnsupportedEventError{Event: event, Expected: domain.ProductDraftAppliedEvent}
	}

	const stmt = `
		UPDATE
			designer.draft
		SET
			applied = true
		WHERE
			id = $1;`

	if _, err := tql.Exec(ctx, p.db, stmt, aggregateID); err != nil {
		return eventsourcing.NewProjectorError(event, err)
	}

	return nil
}
