package projection

import (
	"context"
	"database/sql"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

// Projectors returns every projector keeping the designer.draft and
// designer.draft_value tables in sync with draft events.
func Projectors(db *sql.DB) []eventsourcing.Projector {
	return []eventsourcing.Projector{
		NewProductDraftCreatedEventProjector(db),
		NewProductDraftValueAddedEventProjector(db),
		NewProductDraftValueChangedEventProjector(db),
		NewProductDraftValueRemovedEventProjector(db),
		NewProductDraftAppliedEventProjector(db),
	}
}

const (
	deleteDraftValue = `
		DELETE FROM
			designer.draft_value
		WHERE
			draft_id = $1 AND element_id = $2;`

	insertDraftValue = `
		INSERT INTO designer.draft_value (draft_id, element_id, language, value)
		VALUES ($1, $2, $3, $4);`
)

func replaceValue(
	ctx context.Context,
	tx *sql.Tx,
	draftID uuid.UUID,
	code attributedomain.AttributeCode,
	translations map[core.Language]string,
) error {
	elementID := attributedomain.AttributeIDFromKey(code)

	if _, err := tql.Exec(ctx, tx, deleteDraftValue, draftID, elementID.UUID); err != nil {
		return err
	}

	for language, value := range translations {
		if _, err := tql.Exec(ctx, tx, insertDraftValue, draftID, elementID.UUID, language.String(), value); err != nil {
			return err
		}
	}

	return nil
}
