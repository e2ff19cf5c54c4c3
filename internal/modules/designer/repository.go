package designer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/designer/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db}
}

type templateRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type elementRow struct {
	ElementID uuid.UUID `db:"element_id"`
	X         int       `db:"x"`
	Y         int       `db:"y"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	Required  bool      `db:"required"`
}

// Load returns nil without an error when there is no template with the id.
func (r *TemplateRepository) Load(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	const query = `
		SELECT
			id, name
		FROM
			designer.template
		WHERE
			id = $1;`

	var row templateRow
	err := r.db.GetContext(ctx, &row, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}

	const elementsQuery = `
		SELECT
			element_id, x, y, width, height, required
		FROM
			designer.template_element
		WHERE
			template_id = $1
		ORDER BY
			y, x;`

	var rows []elementRow
	if err := r.db.SelectContext(ctx, &rows, elementsQuery, id); err != nil {
		return nil, err
	}

	template := &domain.Template{
		ID:       row.ID,
		Name:     row.Name,
		Elements: make([]domain.TemplateElement, 0, len(rows)),
	}

	for _, element := range rows {
		template.Elements = append(template.Elements, domain.TemplateElement{
			ElementID: element.ElementID,
			Position:  domain.Position{X: element.X, Y: element.Y},
			Size:      domain.Size{Width: element.Width, Height: element.Height},
			Required:  element.Required,
		})
	}

	return template, nil
}
