package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/grid"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DraftView is the draft as the editor shows it: attribute values in one
// language keyed by template element id.
type DraftView struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	ProductID  uuid.UUID         `json:"product_id" db:"product_id"`
	Type       string            `json:"type" db:"type"`
	Applied    bool              `json:"applied" db:"applied"`
	Attributes map[string]string `json:"attributes" db:"-"`
}

type DraftQuery struct {
	db *sqlx.DB
}

func NewDraftQuery(db *sqlx.DB) *DraftQuery {
	return &DraftQuery{db}
}

func draftGrid() grid.Grid {
	return grid.NewGrid(
		grid.NewColumn("id", grid.IDColumn, goqu.I("d.id")).Hidden(),
		grid.NewColumn("product_id", grid.IDColumn, goqu.I("d.product_id")).Hidden(),
		grid.NewColumn("sku", grid.TextColumn, goqu.I("p.sku")).WithLabel("SKU").WithFilter(grid.MatchFilter),
		grid.NewColumn("type", grid.TextColumn, goqu.I("d.type")).WithLabel("Type"),
		grid.NewColumn("applied", grid.CheckColumn, goqu.I("d.applied")).WithLabel("Applied"),
	)
}

func (q *DraftQuery) GetDataSet() grid.Source {
	from := grid.From(goqu.T("draft").Schema("designer").As("d")).
		InnerJoin(goqu.T("product").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("d.product_id"))))

	return grid.NewDataSet(q.db, draftGrid(), from)
}

// GetDraftView returns nil when the draft does not exist.
func (q *DraftQuery) GetDraftView(
	ctx context.Context,
	id domain.ProductDraftID,
	language core.Language,
) (*DraftView, error) {
	const query = `
		SELECT
			id, product_id, type, applied
		FROM
			designer.draft
		WHERE
			id = $1;`

	var view DraftView
	err := q.db.GetContext(ctx, &view, query, id.UUID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}

	const valuesQuery = `
		SELECT
			element_id, value
		FROM
			designer.draft_value
		WHERE
			draft_id = $1 AND language = $2;`

	var rows []struct {
		ElementID uuid.UUID `db:"element_id"`
		Value     string    `db:"value"`
	}
	if err := q.db.SelectContext(ctx, &rows, valuesQuery, id.UUID, language.String()); err != nil {
		return nil, err
	}

	view.Attributes = make(map[string]string, len(rows))
	for _, row := range rows {
		view.Attributes[row.ElementID.String()] = row.Value
	}

	return &view, nil
}

// FindActualDraftID returns the id of the product's draft that is still open,
// or nil when there is none.
func (q *DraftQuery) FindActualDraftID(ctx context.Context, productID uuid.UUID) (*domain.ProductDraftID, error) {
	const query = `
		SELECT
			id
		FROM
			designer.draft
		WHERE
			product_id = $1 AND applied = false
		ORDER BY
			id
		LIMIT 1;`

	var id uuid.UUID
	err := q.db.GetContext(ctx, &id, query, productID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}

	return &domain.ProductDraftID{UUID: id}, nil
}
