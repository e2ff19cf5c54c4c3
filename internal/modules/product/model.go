package product

import (
	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/google/uuid"
)

// Values holds attribute values per attribute code and language.
type Values map[attributedomain.AttributeCode]map[core.Language]string

func (v Values) Clone() Values {
	clone := make(Values, len(v))
	for code, translations := range v {
		copied := make(map[core.Language]string, len(translations))
		for language, value := range translations {
			copied[language] = value
		}
		clone[code] = copied
	}
	return clone
}

type Product struct {
	ID         uuid.UUID `db:"id"`
	SKU        string    `db:"sku"`
	Type       string    `db:"type"`
	TemplateID uuid.UUID `db:"template_id"`
	Values     Values    `db:"-"`
}
