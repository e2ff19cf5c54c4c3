package domain

import (
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/google/uuid"
)

type ProductDraftID struct {
	uuid.UUID
}

func NewProductDraftID() ProductDraftID {
	return ProductDraftID{uuid.New()}
}

func ParseProductDraftID(s string) (ProductDraftID, error) {
	if !core.IsUUID(s) {
		return ProductDraftID{}, fmt.Errorf("invalid product draft id '%s'", s)
	}

	return ProductDraftID{uuid.MustParse(s)}, nil
}
