package attribute

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type attributeRow struct {
	ID           uuid.UUID      `db:"id"`
	Code         string         `db:"code"`
	Type         string         `db:"type"`
	Multilingual bool           `db:"multilingual"`
	Labels       types.JSONText `db:"labels"`
	Parameters   types.JSONText `db:"parameters"`
	Options      types.JSONText `db:"options"`
}

func (r attributeRow) toDomain() (domain.Attribute, error) {
	attribute := domain.Attribute{
		ID:           domain.AttributeID{UUID: r.ID},
		Code:         domain.AttributeCode(r.Code),
		Type:         domain.AttributeType(r.Type),
		Multilingual: r.Multilingual,
		Labels:       make(map[core.Language]string),
		Parameters:   make(map[string]string),
	}

	if err := unmarshalIfPresent(r.Labels, &attribute.Labels); err != nil {
		return domain.Attribute{}, fmt.Errorf("attribute %s labels: %w", r.Code, err)
	}

	if err := unmarshalIfPresent(r.Parameters, &attribute.Parameters); err != nil {
		return domain.Attribute{}, fmt.Errorf("attribute %s parameters: %w", r.Code, err)
	}

	if err := unmarshalIfPresent(r.Options, &attribute.Options); err != nil {
		return domain.Attribute{}, fmt.Errorf("attribute %s options: %w", r.Code, err)
	}

	return attribute, nil
}

func unmarshalIfPresent(text types.JSONText, dest any) error {
	if len(text) == 0 {
		return nil
	}

	return text.Unmarshal(dest)
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) Load(ctx context.Context, id domain.AttributeID) (domain.Attribute, error) {
	const query = `
		SELECT
			id, code, type, multilingual, labels, parameters, options
		FROM
			attribute
		WHERE
			id = $1;`

	var row attributeRow
	err := r.db.GetContext(ctx, &row, query, id.UUID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.Attribute{}, fmt.Errorf("attribute %s: %w", id.String(), core.ErrNotFound)
	case err != nil:
		return domain.Attribute{}, err
	}

	return row.toDomain()
}

// LoadMany returns the attributes found for ids keyed by id. Missing ids are skipped.
func (r *Repository) LoadMany(ctx context.Context, ids []domain.AttributeID) (map[domain.AttributeID]domain.Attribute, error) {
	result := make(map[domain.AttributeID]domain.Attribute, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rawIDs := core.Map(ids, func(id domain.AttributeID) uuid.UUID { return id.UUID })

	query, args, err := sqlx.In(`
		SELECT
			id, code, type, multilingual, labels, parameters, options
		FROM
			attribute
		WHERE
			id IN (?);`, rawIDs)
	if err != nil {
		return nil, err
	}

	var rows []attributeRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		attribute, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		result[attribute.ID] = attribute
	}

	return result, nil
}
