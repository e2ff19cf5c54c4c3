package domain

import (
	"context"
	"errors"
	"fmt"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/eventsourcing"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/product"

	"github.com/google/uuid"
)

var ErrDraftApplied = errors.New("product draft is already applied")

// ProductDraft is a working copy of a product's values. It is event sourced:
// every state change is recorded as an event and applied through when.
type ProductDraft struct {
	id        ProductDraftID
	productID uuid.UUID
	typ       string
	values    product.Values
	applied   bool

	version int
	changes []eventsourcing.DomainEvent
}

// NewProductDraft starts a draft holding a copy of the product's current values.
func NewProductDraft(id ProductDraftID, p *product.Product) *ProductDraft {
	draft := &ProductDraft{}
	draft.record(ProductDraftCreated{
		ID:        id,
		ProductID: p.ID,
		Type:      p.Type,
		Values:    p.Values.Clone(),
	})
	return draft
}

// LoadProductDraft rebuilds a draft from its recorded events.
func LoadProductDraft(envelopes []eventsourcing.Envelope) (*ProductDraft, error) {
	if len(envelopes) == 0 {
		return nil, core.ErrNotFound
	}

	draft := &ProductDraft{}
	for _, envelope := range envelopes {
		if err := draft.when(envelope.Event); err != nil {
			return nil, err
		}
		draft.version = envelope.Sequence
	}

	return draft, nil
}

func (d *ProductDraft) ID() ProductDraftID   { return d.id }
func (d *ProductDraft) ProductID() uuid.UUID { return d.productID }
func (d *ProductDraft) Type() string         { return d.typ }
func (d *ProductDraft) Applied() bool        { return d.applied }
func (d *ProductDraft) Version() int         { return d.version }

func (d *ProductDraft) Values() product.Values {
	return d.values.Clone()
}

func (d *ProductDraft) Value(code attributedomain.AttributeCode, language core.Language) (string, bool) {
	value, found := d.values[code][language]
	return value, found
}

// Changes returns the events recorded since the draft was loaded.
func (d *ProductDraft) Changes() []eventsourcing.DomainEvent {
	return d.changes
}

// Committed marks recorded events as stored at version.
func (d *ProductDraft) Committed(version int) {
	d.version = version
	d.changes = nil
}

func (d *ProductDraft) ChangeValue(code attributedomain.AttributeCode, language core.Language, value string) error {
	if d.applied {
		return ErrDraftApplied
	}

	current, found := d.values[code]
	if !found {
		d.record(ProductDraftValueAdded{
			AttributeCode: code,
			Value:         map[core.Language]string{language: value},
		})
		return nil
	}

	if old, ok := current[language]; ok && old == value {
		return nil
	}

	to := copyTranslations(current)
	to[language] = value
	d.record(ProductDraftValueChanged{AttributeCode: code, From: copyTranslations(current), To: to})

	return nil
}

// RemoveValue drops the value in language. Removing the last translation
// removes the attribute value from the draft altogether.
func (d *ProductDraft) RemoveValue(code attributedomain.AttributeCode, language core.Language) error {
	if d.applied {
		return ErrDraftApplied
	}

	current, found := d.values[code]
	if !found {
		return nil
	}

	if _, ok := current[language]; !ok {
		return nil
	}

	if len(current) == 1 {
		d.record(ProductDraftValueRemoved{AttributeCode: code, Old: copyTranslations(current)})
		return nil
	}

	to := copyTranslations(current)
	delete(to, language)
	d.record(ProductDraftValueChanged{AttributeCode: code, From: copyTranslations(current), To: to})

	return nil
}

func (d *ProductDraft) Apply() error {
	if d.applied {
		return ErrDraftApplied
	}

	d.record(ProductDraftApplied{ProductID: d.productID})
	return nil
}

func (d *ProductDraft) record(event eventsourcing.DomainEvent) {
	// Events built by the draft itself are always known to when.
	_ = d.when(event)
	d.changes = append(d.changes, event)
}

func (d *ProductDraft) when(event eventsourcing.DomainEvent) error {
	switch e := event.(type) {
	case ProductDraftCreated:
		d.id = e.ID
		d.productID = e.ProductID
		d.typ = e.Type
		d.values = e.Values.Clone()
	case ProductDraftValueAdded:
		d.values[e.AttributeCode] = copyTranslations(e.Value)
	case ProductDraftValueChanged:
		d.values[e.AttributeCode] = copyTranslations(e.To)
	case ProductDraftValueRemoved:
		delete(d.values, e.AttributeCode)
	case ProductDraftApplied:
		d.applied = true
	default:
		return fmt.Errorf("product draft cannot apply event '%s'", event.EventType())
	}

	return nil
}

func copyTranslations(translations map[core.Language]string) map[core.Language]string {
	copied := make(map[core.Language]string, len(translations))
	for language, value := range translations {
		copied[language] = value
	}
	return copied
}

type DraftRepository interface {
	Load(ctx context.Context, id ProductDraftID) (*ProductDraft, error)
	Save(ctx context.Context, draft *ProductDraft) error
}

// DraftProvider finds the draft currently open for a product.
type DraftProvider interface {
	Provide(ctx context.Context, p *product.Product) (*ProductDraft, error)
}
