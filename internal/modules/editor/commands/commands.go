package commands

import (
	"context"
	"errors"
	"net/http"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/google/uuid"
)

type ProductRepository interface {
	LoadProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
	SaveProduct(ctx context.Context, p *product.Product) error
}

type AttributeRepository interface {
	Load(ctx context.Context, id attributedomain.AttributeID) (attributedomain.Attribute, error)
}

// commandError gives well known failures their status code.
func commandError(err error) error {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.NewCommandError(http.StatusNotFound, err)
	case errors.Is(err, domain.ErrDraftApplied):
		return core.NewCommandError(http.StatusBadRequest, err, core.WithReason("product draft is closed"))
	default:
		return err
	}
}
