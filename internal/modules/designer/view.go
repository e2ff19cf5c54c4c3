package designer

import (
	"context"

	attributedomain "github.com/eskrenkovic/product-draft-editor/internal/modules/attribute/domain"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
	"github.com/eskrenkovic/product-draft-editor/internal/modules/designer/domain"
)

type AttributeLoader interface {
	LoadMany(ctx context.Context, ids []attributedomain.AttributeID) (map[attributedomain.AttributeID]attributedomain.Attribute, error)
}

type ViewTemplateBuilder struct {
	attributes AttributeLoader
}

func NewViewTemplateBuilder(attributes AttributeLoader) *ViewTemplateBuilder {
	return &ViewTemplateBuilder{attributes}
}

// Build resolves every element of template against its attribute. Elements
// whose attribute no longer exists are left out.
func (b *ViewTemplateBuilder) Build(
	ctx context.Context,
	template domain.Template,
	language core.Language,
) (domain.ViewTemplate, error) {
	ids := core.Map(template.Elements, func(e domain.TemplateElement) attributedomain.AttributeID {
		return attributedomain.AttributeID{UUID: e.ElementID}
	})

	attributes, err := b.attributes.LoadMany(ctx, ids)
	if err != nil {
		return domain.ViewTemplate{}, err
	}

	view := domain.ViewTemplate{
		ID:       template.ID,
		Name:     template.Name,
		Elements: make([]domain.ViewTemplateElement, 0, len(template.Elements)),
	}

	for _, element := range template.Elements {
		attribute, found := attributes[attributedomain.AttributeID{UUID: element.ElementID}]
		if !found {
			continue
		}

		view.Elements = append(view.Elements, domain.ViewTemplateElement{
			ID:         element.ElementID,
			Type:       string(attribute.Type),
			Label:      attribute.Label(language),
			Position:   element.Position,
			Size:       element.Size,
			Required:   element.Required,
			Properties: properties(attribute),
		})
	}

	return view, nil
}

func properties(attribute attributedomain.Attribute) map[string]any {
	props := map[string]any{
		"attribute_code": string(attribute.Code),
		"multilingual":   attribute.Multilingual,
	}

	for key, value := range attribute.Parameters {
		props[key] = value
	}

	if len(attribute.Options) > 0 {
		props["options"] = attribute.Options
	}

	return props
}
