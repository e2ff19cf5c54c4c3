package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"

	"github.com/google/uuid"
)

type CreateProductDraftCommand struct {
	DraftID   domain.ProductDraftID
	ProductID uuid.UUID
}

func NewCreateProductDraftCommand(productID uuid.UUID) CreateProductDraftCommand {
	return CreateProductDraftCommand{DraftID: domain.NewProductDraftID(), ProductID: productID}
}

func (c CreateProductDraftCommand) ID() domain.ProductDraftID {
	return c.DraftID
}

func (c CreateProductDraftCommand) Validate() error {
	if c.DraftID.UUID == uuid.Nil {
		return fmt.Errorf("invalid DraftID - '%s'", c.DraftID.String())
	}

	if c.ProductID == uuid.Nil {
		return fmt.Errorf("invalid ProductID - '%s'", c.ProductID.String())
	}

	return nil
}

// OpenDraftFinder looks up the draft of a product that is not applied yet.
type OpenDraftFinder interface {
	FindActualDraftID(ctx context.Context, productID uuid.UUID) (*domain.ProductDraftID, error)
}

// CreateProductDraftCommandHandler opens a draft for a product. A product has
// at most one open draft at a time.
type CreateProductDraftCommandHandler struct {
	products ProductRepository
	finder   OpenDraftFinder
	drafts   domain.DraftRepository
}

func NewCreateProductDraftCommandHandler(
	products ProductRepository,
	finder OpenDraftFinder,
	drafts domain.DraftRepository,
) *CreateProductDraftCommandHandler {
	return &CreateProductDraftCommandHandler{products: products, finder: finder, drafts: drafts}
}

func (h *CreateProductDraftCommandHandler) Handle(
	ctx context.Context,
	command CreateProductDraftCommand,
) (core.Unit, error) {
	p, err := h.products.LoadProduct(ctx, command.ProductID)
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	openDraftID, err := h.finder.FindActualDraftID(ctx, p.ID)
	if err != nil {
		return core.Unit{}, err
	}

	if openDraftID != nil {
		return core.Unit{}, core.NewCommandError(
			http.StatusBadRequest,
			fmt.Errorf("product %s already has open draft %s", p.ID.String(), openDraftID.String()),
			core.WithReason("product draft already exists"),
		)
	}

	draft := domain.NewProductDraft(command.DraftID, p)
	if err := h.drafts.Save(ctx, draft); err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
