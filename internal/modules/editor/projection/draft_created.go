package projection

import (
	"context"
	"database/sql"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

var _ eventsourcing.Projector = (*ProductDraftCreatedEventProjector)(nil)

type ProductDraftCreatedEventProjector struct {
	db *sql.DB
}

func NewProductDraftCreatedEventProjector(db *sql.DB) *ProductDraftCreatedEventProjector {
	return &ProductDraftCreatedEventProjector{db}
}

func (p *ProductDraftCreatedEventProjector) Supports(event eventsourcing.DomainEvent) bool {
	_, ok := event.(domain.ProductDraftCreated)
	return ok
}

func (p *ProductDraftCreatedEventProjector) Project(
	ctx context.Context,
	aggregateID uuid.UUID,
	event eventsourcing.DomainEvent,
) error {
	created, ok := event.(domain.ProductDraftCreated)
	if !ok {
		return &eventsourcing.UnsupportedEventError{Event: event, Expected: domain.ProductDraftCreatedEvent}
	}

	err := core.Tx(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO designer.draft (id, product_id, type, applied)
			VALUES ($1, $2, $3, false);`

		if _, err := tql.Exec(ctx, tx, stmt, aggregateID, created.ProductID, created.Type); err != nil {
			return err
		}

		for code, translations := range created.Values {
			if err := replaceValue(ctx, tx, aggregateID, code, translations); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return eventsourcing.NewProjectorError(event, err)
	}

	return nil
}
