package domain

import (
	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/google/uuid"
)

const (
	ProductDraftCreatedEvent      eventsourcing.EventType = "ProductDraftCreated"
	ProductDraftValueAddedEvent   eventsourcing.EventType = "ProductDraftValueAdded"
	ProductDraftValueChangedEvent eventsourcing.EventType = "ProductDraftValueChanged"
	ProductDraftValueRemovedEvent eventsourcing.EventType = "ProductDraftValueRemoved"
	ProductDraftAppliedEvent      eventsourcing.EventType = "ProductDraftApplied"
)

type ProductDraftCreated struct {
	ID        ProductDraftID `json:"id"`
	ProductID uuid.UUID      `json:"product_id"`
	Type      string         `json:"type"`
	Values    product.Values `json:"values"`
}

func (ProductDraftCreated) EventType() eventsourcing.EventType { return ProductDraftCreatedEvent }

// ProductDraftValueAdded and ProductDraftValueChanged carry every translation
// the attribute has after the change.
type ProductDraftValueAdded struct {
	AttributeCode attributedomain.AttributeCode `json:"attribute_code"`
	Value         map[core.Language]string      `json:"value"`
}

func (ProductDraftValueAdded) EventType() eventsourcing.EventType { return ProductDraftValueAddedEvent }

type ProductDraftValueChanged struct {
	AttributeCode attributedomain.AttributeCode `json:"attribute_code"`
	From          map[core.Language]string      `json:"from"`
	To            map[core.Language]string      `json:"to"`
}

func (ProductDraftValueChanged) EventType() eventsourcing.EventType {
	return ProductDraftValueChangedEvent
}

type ProductDraftValueRemoved struct {
	AttributeCode attributedomain.AttributeCode `json:"attribute_code"`
	Old           map[core.Language]string      `json:"old"`
}

func (ProductDraftValueRemoved) EventType() eventsourcing.EventType {
	return ProductDraftValueRemovedEvent
}

type ProductDraftApplied struct {
	ProductID uuid.UUID `json:"product_id"`
}

func (ProductDraftApplied) EventType() eventsourcing.EventType { return ProductDraftAppliedEvent }

// RegisterEvents makes the draft events decodable from the event store.
func RegisterEvents(registry *eventsourcing.EventRegistry) {
	registry.Register(
		ProductDraftCreated{},
		ProductDraftValueAdded{},
		ProductDraftValueChanged{},
		ProductDraftValueRemoved{},
		ProductDraftApplied{},
	)
}
