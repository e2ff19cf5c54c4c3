package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db}
}

type valueRow struct {
	Code     string `db:"code"`
	Language string `db:"language"`
	Value    string `db:"value"`
}

func (r *ProductRepository) LoadProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	const query = `
		SELECT
			id, sku, type, template_id
		FROM
			product
		WHERE
			id = $1;`

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("product %s: %w", id.String(), core.ErrNotFound)
	case err != nil:
		return nil, err
	}

	const valuesQuery = `
		SELECT
			a.code, pv.language, pv.value
		FROM
			product_value pv
		INNER JOIN attribute a ON a.id = pv.attribute_id
		WHERE
			pv.product_id = $1;`

	var rows []valueRow
	if err := r.db.SelectContext(ctx, &rows, valuesQuery, id); err != nil {
		return nil, err
	}

	product.Values = make(Values)
	for _, row := range rows {
		code := attributedomain.AttributeCode(row.Code)
		if product.Values[code] == nil {
			product.Values[code] = make(map[core.Language]string)
		}
		product.Values[code][core.Language(row.Language)] = row.Value
	}

	return &product, nil
}

// SaveProduct writes the product row and replaces all of its values.
func (r *ProductRepository) SaveProduct(ctx context.Context, product *Product) error {
	return core.Tx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO product (id, sku, type, template_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id)
			DO UPDATE SET sku = EXCLUDED.sku, type = EXCLUDED.type, template_id = EXCLUDED.template_id;`

		if _, err := tql.Exec(ctx, tx, stmt, product.ID, product.SKU, product.Type, product.TemplateID); err != nil {
			return err
		}

		const deleteValues = `
			DELETE FROM
				product_value
			WHERE
				product_id = $1;`

		if _, err := tql.Exec(ctx, tx, deleteValues, product.ID); err != nil {
			return err
		}

		const insertValue = `
			INSERT INTO product_value (product_id, attribute_id, language, value)
			VALUES ($1, $2, $3, $4);`

		for code, translations := range product.Values {
			attributeID := attributedomain.AttributeIDFromKey(code)
			for language, value := range translations {
				_, err := tql.Exec(ctx, tx, insertValue, product.ID, attributeID.UUID, language.String(), value)
				if err != nil {
					return err
				}
			}
		}

		return nil
	})
}
