package commands

import (
	"context"
	"fmt"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/editor/domain"

	"github.com/google/uuid"
)

// ChangeProductAttributeValueCommand sets the value of an attribute in one
// language. A nil Value removes it.
type ChangeProductAttributeValueCommand struct {
	DraftID     domain.ProductDraftID
	AttributeID attributedomain.AttributeID
	Language    core.Language
	Value       *string
}

func (c ChangeProductAttributeValueCommand) ID() domain.ProductDraftID {
	return c.DraftID
}

func (c ChangeProductAttributeValueCommand) Validate() error {
	if c.DraftID.UUID == uuid.Nil {
		return fmt.Errorf("invalid DraftID - '%s'", c.DraftID.String())
	}

	if c.AttributeID.UUID == uuid.Nil {
		return fmt.Errorf("invalid AttributeID - '%s'", c.AttributeID.String())
	}

	if c.Language == "" {
		return fmt.Errorf("invalid Language - '%s'", c.Language)
	}

	return nil
}

type ChangeProductAttributeValueCommandHandler struct {
	attributes AttributeRepository
	drafts     domain.DraftRepository
}

func NewChangeProductAttributeValueCommandHandler(
	attributes AttributeRepository,
	drafts domain.DraftRepository,
) *ChangeProductAttributeValueCommandHandler {
	return &ChangeProductAttributeValueCommandHandler{attributes: attributes, drafts: drafts}
}

func (h *ChangeProductAttributeValueCommandHandler) Handle(
	ctx context.Context,
	command ChangeProductAttributeValueCommand,
) (core.Unit, error) {
	draft, err := h.drafts.Load(ctx, command.DraftID)
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	attribute, err := h.attributes.Load(ctx, command.AttributeID)
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	if command.Value == nil {
		err = draft.RemoveValue(attribute.Code, command.Language)
	} else {
		err = draft.ChangeValue(attribute.Code, command.Language, *command.Value)
	}
	if err != nil {
		return core.Unit{}, commandError(err)
	}

	if err := h.drafts.Save(ctx, draft); err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
