package commands

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"

	"github.com/google/uuid"
)

type PersistProductDraftCommand struct {
	DraftID domain.ProductDraftID
}

func (c PersistProductDraftCommand) ID() domain.ProductDraftID {
	return c.DraftID
}

func (c PersistProductDraftCommand) Validate() error {
	if c.DraftID.UUID == uuid.Nil {
		return fmt.Errorf("invalid DraftID - '%s'", c.DraftID.String())
	}

	return nil
}

// PersistProductDraftCommandHandler copies the draft values onto its product
// and closes the draft.
type PersistProductDraftCommandHandler struct {
	products ProductRepository
	drafts   domain.DraftRepository
}

func NewPersistProductDraftCommandHandler(
	products ProductRepository,
	drafts domain.DraftRepository,
) *PersistProductDraftCommandHandler {
	return &PersistProductDraftCommandHandler{products: products, drafts: drafts}
}

func (h *PersistProductDraftCommandHandler) Handle(
	ctx context.Context,
	command PersistProductDraftCommand,
) (core.Unit, error) {
	draft, err := h.drafts.Load(ctx, command.DraftID)
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	if err := draft.Apply(); err != nil {
		return core.Unit{}, commandError(err)
	}

	p, err := h.products.LoadProduct(ctx, draft.ProductID())
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	p.Values = draft.Values()
	if err := h.products.SaveProduct(ctx, p); err != nil {
		return core.Unit{}, err
	}

	if err := h.drafts.Save(ctx, draft); err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
