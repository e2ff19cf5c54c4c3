package persistence

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/google/uuid"
)

type draftFinder interface {
	FindActualDraftID(ctx context.Context, productID uuid.UUID) (*domain.ProductDraftID, error)
}

var _ domain.DraftProvider = (*DraftProvider)(nil)

type DraftProvider struct {
	finder draftFinder
	drafts domain.DraftRepository
}

func NewDraftProvider(finder draftFinder, drafts domain.DraftRepository) *DraftProvider {
	return &DraftProvider{finder: finder, drafts: drafts}
}

// Provide returns the open draft of p. Products without one yield core.ErrNotFound.
func (p *DraftProvider) Provide(ctx context.Context, prod *product.Product) (*domain.ProductDraft, error) {
	id, err := p.finder.FindActualDraftID(ctx, prod.ID)
	if err != nil {
		return nil, err
	}

	if id == nil {
		return nil, fmt.Errorf("draft for product %s: %w", prod.ID.String(), core.ErrNotFound)
	}

	return p.drafts.Load(ctx, *id)
}
